package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// CreateLeadInput is the public quote/contact form. At least one way of
// reaching the customer is required.
type CreateLeadInput struct {
	Name        string `json:"name" validate:"required_without_all=Email Phone,max=200"`
	Company     string `json:"company" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	Phone       string `json:"phone" validate:"max=40"`
	Brand       string `json:"brand" validate:"max=200"`
	Requirement string `json:"requirement" validate:"max=2000"`
	Quantity    string `json:"quantity" validate:"max=100"`
	City        string `json:"city" validate:"max=120"`
	Timeline    string `json:"timeline" validate:"max=120"`
	Message     string `json:"message" validate:"max=5000"`
	FormSource  string `json:"formSource" validate:"max=120"`
	Path        string `json:"path" validate:"max=500"`
}

func (in CreateLeadInput) trimmed() CreateLeadInput {
	return CreateLeadInput{
		Name:        strings.TrimSpace(in.Name),
		Company:     strings.TrimSpace(in.Company),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Brand:       strings.TrimSpace(in.Brand),
		Requirement: strings.TrimSpace(in.Requirement),
		Quantity:    strings.TrimSpace(in.Quantity),
		City:        strings.TrimSpace(in.City),
		Timeline:    strings.TrimSpace(in.Timeline),
		Message:     strings.TrimSpace(in.Message),
		FormSource:  strings.TrimSpace(in.FormSource),
		Path:        strings.TrimSpace(in.Path),
	}
}

// ContactFields keeps every submitted value as it arrived; empty ones are dropped.
func (in CreateLeadInput) ContactFields() entity.ContactFields {
	fields := entity.ContactFields{}
	add := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fields[key] = value
		}
	}
	add("name", in.Name)
	add("company", in.Company)
	add("email", in.Email)
	add("phone", in.Phone)
	add("brand", in.Brand)
	add("requirement", in.Requirement)
	add("quantity", in.Quantity)
	add("city", in.City)
	add("timeline", in.Timeline)
	add("message", in.Message)
	add("formSource", in.FormSource)
	add("path", in.Path)
	return fields
}

type CreateLeadOutput struct {
	OK     bool   `json:"ok"`
	LeadID string `json:"leadId"`
}

type UpdateLeadInput struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,max=200"`
	Notes      *string `json:"notes" validate:"omitempty,max=5000"`
}

type ListLeadsInput struct {
	Status string
	Limit  int `validate:"gte=0,lte=200"`
	Offset int `validate:"gte=0"`
}

type ListLeadsOutput struct {
	Leads  []*entity.Lead `json:"leads"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
