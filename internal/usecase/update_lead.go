package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type UpdateLeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Validator *Validator
	Log       *zap.Logger
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface, v *Validator, log *zap.Logger) *UpdateLeadUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	if v == nil {
		v = NewValidator()
	}
	return &UpdateLeadUseCase{Repo: repo, Validator: v, Log: log}
}

const statusList = "new, contacted, qualified, closed, lost"

// Execute applies only the fields present in input. The status is checked
// before the store is touched.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if id == "" {
		return nil, notFoundError()
	}

	patch := entity.LeadPatch{
		AssignedTo: input.AssignedTo,
		Notes:      input.Notes,
	}
	if input.Status != nil {
		status := entity.LeadStatus(*input.Status)
		if !status.IsValid() {
			return nil, validationError(fmt.Sprintf("status must be one of: %s", statusList))
		}
		patch.Status = &status
	}
	if patch.IsEmpty() {
		return nil, validationError("at least one of status, assignedTo or notes is required")
	}
	if err := uc.Validator.Validate(input); err != nil {
		return nil, err
	}

	lead, err := uc.Repo.Update(ctx, id, patch)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, notFoundError()
	}
	if err != nil {
		uc.Log.Error("failed to update lead", zap.String("lead_id", id), zap.Error(err))
		return nil, databaseError("failed to update lead", err)
	}

	uc.Log.Info("lead updated", zap.String("lead_id", id), zap.String("status", string(lead.Status)))
	return lead, nil
}
