package services

import (
	"context"
	"time"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

const statusListLimit = 1000

// StatusService backs the legacy /api/status liveness records.
type StatusService interface {
	Create(ctx context.Context, in analytics.StatusCheckInput) (*analytics.StatusCheck, error)
	List(ctx context.Context) ([]*analytics.StatusCheck, error)
}

type statusService struct {
	store *store.Store
	log   *logger.Logger
}

func NewStatusService(st *store.Store, log *logger.Logger) StatusService {
	return &statusService{store: st, log: log.With("service", "StatusService")}
}

func (s *statusService) Create(ctx context.Context, in analytics.StatusCheckInput) (*analytics.StatusCheck, error) {
	check, err := validation.StatusCheck(in)
	if err != nil {
		return nil, err
	}
	check.Timestamp = time.Now().UTC()
	if err := s.store.StatusChecks.Insert(ctx, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

func (s *statusService) List(ctx context.Context) ([]*analytics.StatusCheck, error) {
	return s.store.StatusChecks.Find(ctx, nil, store.FindOptions{Limit: statusListLimit})
}
