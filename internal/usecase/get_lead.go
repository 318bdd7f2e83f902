package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const (
	defaultListLimit = 50
)

type GetLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewGetLeadUseCase(repo entity.LeadRepositoryInterface) *GetLeadUseCase {
	return &GetLeadUseCase{Repo: repo}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, notFoundError()
	}
	if err != nil {
		return nil, databaseError("failed to load lead", err)
	}
	return lead, nil
}

type ListLeadsUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Validator *Validator
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface, v *Validator) *ListLeadsUseCase {
	if v == nil {
		v = NewValidator()
	}
	return &ListLeadsUseCase{Repo: repo, Validator: v}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	status := entity.LeadStatus(input.Status)
	if status != "" && !status.IsValid() {
		return nil, validationError(fmt.Sprintf("status must be one of: %s", statusList))
	}
	if err := uc.Validator.Validate(input); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	leads, total, err := uc.Repo.List(ctx, entity.LeadFilter{Status: status}, limit, input.Offset)
	if err != nil {
		return nil, databaseError("failed to list leads", err)
	}

	return &ListLeadsOutput{
		Leads:  leads,
		Total:  total,
		Limit:  limit,
		Offset: input.Offset,
	}, nil
}
