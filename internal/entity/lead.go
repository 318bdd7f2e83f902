package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusLost      LeadStatus = "lost"
)

var validLeadStatuses = map[LeadStatus]struct{}{
	LeadStatusNew:       {},
	LeadStatusContacted: {},
	LeadStatusQualified: {},
	LeadStatusClosed:    {},
	LeadStatusLost:      {},
}

// IsValid accepts every status, including new: any status can move to any other.
func (s LeadStatus) IsValid() bool {
	_, ok := validLeadStatuses[s]
	return ok
}

var ErrLeadNotFound = errors.New("lead not found")

// ContactFields guarda os campos do formulário exatamente como chegaram.
type ContactFields map[string]string

type Lead struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Status        LeadStatus    `json:"status"`
	AssignedTo    *string       `json:"assigned_to,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	ContactFields ContactFields `json:"contact_fields"`
}

// Field returns a submitted field, "" when absent.
func (l *Lead) Field(name string) string {
	if l == nil || l.ContactFields == nil {
		return ""
	}
	return l.ContactFields[name]
}

// NewLead copies fields so later changes to the caller's map never reach the lead.
func NewLead(fields ContactFields, now time.Time) *Lead {
	copied := make(ContactFields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Lead{
		ID:            uuid.New().String(),
		CreatedAt:     now,
		UpdatedAt:     now,
		Status:        LeadStatusNew,
		ContactFields: copied,
	}
}

// LeadPatch only carries the fields an admin changed; nil means untouched.
type LeadPatch struct {
	Status     *LeadStatus
	AssignedTo *string
	Notes      *string
}

func (p LeadPatch) IsEmpty() bool {
	return p.Status == nil && p.AssignedTo == nil && p.Notes == nil
}

type LeadFilter struct {
	Status LeadStatus
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	List(ctx context.Context, filter LeadFilter, limit, offset int) ([]*Lead, int, error)
}
