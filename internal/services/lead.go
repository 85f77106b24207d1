package services

import (
	"context"
	"time"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

// leadListLimit caps the admin lead listing.
const leadListLimit = 1000

type LeadService interface {
	Create(ctx context.Context, in leads.CreateInput) (*leads.Lead, error)
	List(ctx context.Context) ([]*leads.Lead, error)
	Update(ctx context.Context, id string, patch leads.Patch) (*leads.Lead, error)
}

type leadService struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewLeadService(st *store.Store, log *logger.Logger) LeadService {
	return &leadService{
		store: st,
		log:   log.With("service", "LeadService"),
		now:   time.Now,
	}
}

func (s *leadService) Create(ctx context.Context, in leads.CreateInput) (*leads.Lead, error) {
	lead, err := validation.Lead(in)
	if err != nil {
		return nil, err
	}
	lead.Status = leads.StatusNew
	lead.CreatedAt = s.now().UTC()
	if err := s.store.Leads.Insert(ctx, &lead); err != nil {
		s.log.Error("lead insert failed", "error", err)
		return nil, err
	}
	s.log.Info("lead captured", "lead_id", lead.ID, "source", lead.Source, "model", lead.Model)
	return &lead, nil
}

func (s *leadService) List(ctx context.Context) ([]*leads.Lead, error) {
	return s.store.Leads.Find(ctx, nil, store.FindOptions{
		SortBy:     "created_at",
		Descending: true,
		Limit:      leadListLimit,
	})
}

func (s *leadService) Update(ctx context.Context, id string, patch leads.Patch) (*leads.Lead, error) {
	patch, err := validation.LeadPatch(patch)
	if err != nil {
		return nil, err
	}
	lead, err := s.store.Leads.Update(ctx, id, store.Fields(patch.Fields()))
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		s.log.Info("lead status changed", "lead_id", id, "status", lead.Status)
	}
	return lead, nil
}
