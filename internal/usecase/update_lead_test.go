package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func strPtr(s string) *string { return &s }

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

// TestUpdateLeadAppliesOnlyGivenFields
func TestUpdateLeadAppliesOnlyGivenFields(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := entity.NewLead(entity.ContactFields{"name": "Maria"}, time.Now())
	lead.Status = entity.LeadStatusContacted

	status := entity.LeadStatusContacted
	repo.On("Update", mock.Anything, lead.ID, entity.LeadPatch{Status: &status}).Return(lead, nil)

	got, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), lead.ID, usecase.UpdateLeadInput{Status: strPtr("contacted")})

	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusContacted, got.Status)
	repo.AssertExpectations(t)
}

// TestUpdateLeadBackToNew - qualquer status pode voltar para new
func TestUpdateLeadBackToNew(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := entity.NewLead(nil, time.Now())
	repo.On("Update", mock.Anything, lead.ID, mock.Anything).Return(lead, nil)

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), lead.ID, usecase.UpdateLeadInput{Status: strPtr("new")})

	assert.NoError(t, err)
}

// TestUpdateLeadInvalidStatus - store nunca é tocado
func TestUpdateLeadInvalidStatus(t *testing.T) {
	repo := new(MockLeadRepository)

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), "id-1", usecase.UpdateLeadInput{Status: strPtr("won"), Notes: strPtr("x")})

	assert.Equal(t, usecase.CodeValidation, domainCode(t, err))
	assert.Contains(t, err.Error(), "status must be one of")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadEmptyPatch(t *testing.T) {
	repo := new(MockLeadRepository)

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), "id-1", usecase.UpdateLeadInput{})

	assert.Equal(t, usecase.CodeValidation, domainCode(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadNotesTooLong(t *testing.T) {
	repo := new(MockLeadRepository)
	long := make([]byte, 5001)
	for i := range long {
		long[i] = 'n'
	}

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), "id-1", usecase.UpdateLeadInput{Notes: strPtr(string(long))})

	assert.EqualError(t, err, "notes must not exceed 5000 characters")
}

func TestUpdateLeadNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, entity.ErrLeadNotFound)

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), "missing", usecase.UpdateLeadInput{Notes: strPtr("ligar amanhã")})

	assert.Equal(t, usecase.CodeNotFound, domainCode(t, err))
}

func TestUpdateLeadDatabaseError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Update", mock.Anything, "id-1", mock.Anything).Return(nil, errors.New("deadlock"))

	_, err := usecase.NewUpdateLeadUseCase(repo, nil, nil).
		Execute(context.Background(), "id-1", usecase.UpdateLeadInput{AssignedTo: strPtr("joao")})

	var te *usecase.TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, usecase.CodeDatabase, te.Code)
	assert.EqualError(t, errors.Unwrap(err), "deadlock")
}
