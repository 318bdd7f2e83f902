package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type CreateLeadUseCase struct {
	Repo       entity.LeadRepositoryInterface
	Dispatcher LeadDispatcher
	Validator  *Validator
	Log        *zap.Logger
	OnCreated  func()

	now      func() time.Time
	inflight sync.WaitGroup
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, dispatcher LeadDispatcher, v *Validator, log *zap.Logger) *CreateLeadUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	if v == nil {
		v = NewValidator()
	}
	return &CreateLeadUseCase{
		Repo:       repo,
		Dispatcher: dispatcher,
		Validator:  v,
		Log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute persists the lead and returns as soon as it is durable. Notifications
// run afterwards in their own goroutine and can never fail the submission.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if err := uc.Validator.Validate(input.trimmed()); err != nil {
		return nil, err
	}

	lead := entity.NewLead(input.ContactFields(), uc.now())

	if err := uc.Repo.Create(ctx, lead); err != nil {
		uc.Log.Error("failed to persist lead", zap.String("lead_id", lead.ID), zap.Error(err))
		return nil, databaseError("failed to save lead", err)
	}

	uc.Log.Info("lead captured",
		zap.String("lead_id", lead.ID),
		zap.String("form_source", lead.Field("formSource")),
	)
	if uc.OnCreated != nil {
		uc.OnCreated()
	}

	if uc.Dispatcher != nil {
		uc.inflight.Add(1)
		go func(l *entity.Lead) {
			defer uc.inflight.Done()
			// Contexto novo: a request original já terá terminado.
			uc.Dispatcher.Dispatch(context.Background(), l)
		}(lead)
	}

	return &CreateLeadOutput{OK: true, LeadID: lead.ID}, nil
}

// Wait blocks until every dispatch started by Execute has settled or ctx ends.
func (uc *CreateLeadUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
