package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const maxBodyBytes = 64 << 10

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeUsecaseError traduz o erro do usecase em status HTTP. Detalhes técnicos
// ficam só no log.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeError(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeError(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "", "internal error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
