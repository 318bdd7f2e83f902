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

func TestGetLead(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := entity.NewLead(entity.ContactFields{"email": "a@b.com"}, time.Now())
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewGetLeadUseCase(repo)

	got, err := uc.Execute(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead, got)

	_, err = uc.Execute(context.Background(), "missing")
	assert.Equal(t, usecase.CodeNotFound, domainCode(t, err))
}

func TestListLeadsDefaultsAndFilter(t *testing.T) {
	repo := new(MockLeadRepository)
	leads := []*entity.Lead{entity.NewLead(nil, time.Now())}
	repo.On("List", mock.Anything, entity.LeadFilter{Status: entity.LeadStatusQualified}, 50, 0).Return(leads, 7, nil)

	out, err := usecase.NewListLeadsUseCase(repo, nil).
		Execute(context.Background(), usecase.ListLeadsInput{Status: "qualified"})

	require.NoError(t, err)
	assert.Equal(t, 7, out.Total)
	assert.Equal(t, 50, out.Limit)
	assert.Len(t, out.Leads, 1)
}

func TestListLeadsRejectsBadInput(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := usecase.NewListLeadsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), usecase.ListLeadsInput{Status: "archived"})
	assert.Equal(t, usecase.CodeValidation, domainCode(t, err))

	_, err = uc.Execute(context.Background(), usecase.ListLeadsInput{Limit: 500})
	assert.EqualError(t, err, "Limit must be at most 200")

	_, err = uc.Execute(context.Background(), usecase.ListLeadsInput{Offset: -1})
	assert.Equal(t, usecase.CodeValidation, domainCode(t, err))

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListLeadsDatabaseError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, 0, errors.New("timeout"))

	_, err := usecase.NewListLeadsUseCase(repo, nil).Execute(context.Background(), usecase.ListLeadsInput{})
	assert.True(t, usecase.IsTechnicalError(err))
}

func TestListMessages(t *testing.T) {
	reader := new(MockMessageReader)
	reader.On("ListQueued", mock.Anything, 100).Return(nil, nil).Once()

	msgs, err := usecase.NewListMessagesUseCase(reader).Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	_, err = usecase.NewListMessagesUseCase(nil).Execute(context.Background())
	assert.Equal(t, usecase.CodeNotConfigured, domainCode(t, err))
}
