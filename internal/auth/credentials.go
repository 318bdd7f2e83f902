package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single management account allowed into the portal.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

func (c Credentials) Configured() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

// Check compares username/password with the configured account. A bcrypt hash
// takes precedence over the plain password.
func (c Credentials) Check(username, password string) bool {
	if !c.Configured() || password == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passOK bool
	if c.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	return userOK && passOK
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

type Account struct {
	Credentials
	Role Role
}

// Authenticate returns the role of the first account matching username/password.
func Authenticate(accounts []Account, username, password string) (Role, bool) {
	for _, a := range accounts {
		if a.Check(username, password) {
			return a.Role, true
		}
	}
	return "", false
}
