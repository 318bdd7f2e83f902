package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type AdminLeadHandler struct {
	listLeads  *usecase.ListLeadsUseCase
	getLead    *usecase.GetLeadUseCase
	updateLead *usecase.UpdateLeadUseCase
}

func NewAdminLeadHandler(list *usecase.ListLeadsUseCase, get *usecase.GetLeadUseCase, update *usecase.UpdateLeadUseCase) *AdminLeadHandler {
	return &AdminLeadHandler{listLeads: list, getLead: get, updateLead: update}
}

func (h *AdminLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.ListLeadsInput{Status: strings.TrimSpace(q.Get("status"))}

	var err error
	if input.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid limit")
		return
	}
	if input.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid offset")
		return
	}

	out, err := h.listLeads.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminLeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.getLead.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *AdminLeadHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid json")
		return
	}

	lead, err := h.updateLead.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func queryInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
