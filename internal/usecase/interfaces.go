package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/notification"
)

type LeadDispatcher interface {
	Dispatch(ctx context.Context, lead *entity.Lead) notification.Result
}
