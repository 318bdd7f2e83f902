package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/conversion"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const LeadSessionCookieName = "lead_session"

type ConversionRequest struct {
	LeadID     string `json:"leadId"`
	Path       string `json:"path"`
	FormSource string `json:"formSource"`
}

type ConversionResponse struct {
	Fired bool `json:"fired"`
}

type ConversionHandler struct {
	tracker      *conversion.Tracker
	cookieSecure bool
	log          *zap.Logger
}

func NewConversionHandler(tracker *conversion.Tracker, cookieSecure bool, log *zap.Logger) *ConversionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConversionHandler{tracker: tracker, cookieSecure: cookieSecure, log: log}
}

// Track dispara a conversão no máximo uma vez por lead na sessão do navegador.
func (h *ConversionHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req ConversionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid json")
		return
	}
	if strings.TrimSpace(req.LeadID) == "" && strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "leadId or path is required")
		return
	}

	sessionID := h.sessionID(w, r)

	fired, err := h.tracker.MaybeFire(r.Context(), sessionID, req.LeadID, req.Path, req.FormSource)
	if err != nil {
		h.log.Error("conversion tracking failed", zap.String("lead_id", req.LeadID), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "", "conversion tracking unavailable")
		return
	}

	writeJSON(w, http.StatusOK, ConversionResponse{Fired: fired})
}

// sessionID reads the lead_session cookie, issuing a session cookie when absent.
func (h *ConversionHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(LeadSessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     LeadSessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
