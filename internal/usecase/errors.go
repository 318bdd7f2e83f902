package usecase

import "errors"

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeDatabase      = "DATABASE_ERROR"
)

// DomainError é erro de regra de negócio: a mensagem pode ir para o cliente.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de infraestrutura; Err nunca é exposto na resposta.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationError(msg string) error {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func notFoundError() error {
	return &DomainError{Code: CodeNotFound, Message: "lead not found"}
}

func databaseError(msg string, err error) error {
	return &TechnicalError{Code: CodeDatabase, Message: msg, Err: err}
}
