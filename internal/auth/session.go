package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleManagement Role = "management"
	RoleSales      Role = "sales"
)

const issuer = "ligue-leads"

var ErrUnauthenticated = errors.New("unauthenticated")

// PortalSession is what a verified token carries. It is never stored server
// side, so it cannot be revoked before it expires.
type PortalSession struct {
	Username  string
	Role      Role
	ExpiresAt time.Time
}

func (s PortalSession) IsManagement() bool {
	return s.Role == RoleManagement
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for username/role valid for the manager's TTL.
func (m *SessionManager) Issue(username string, role Role) (string, time.Time, error) {
	return m.issueAt(username, role, m.now())
}

func (m *SessionManager) issueAt(username string, role Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.TTL)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Authorize verifies signature and expiry. Any failure is ErrUnauthenticated.
func (m *SessionManager) Authorize(tokenStr string) (PortalSession, error) {
	if tokenStr == "" || len(m.Secret) == 0 {
		return PortalSession{}, ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.Role == "" {
		return PortalSession{}, ErrUnauthenticated
	}

	return PortalSession{
		Username:  claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
