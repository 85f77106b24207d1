package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

type AnalyticsService interface {
	LeadStats(ctx context.Context) (*analytics.LeadStats, error)
	RecordPageView(ctx context.Context, in analytics.PageViewInput) (*analytics.PageView, error)
	RecordFormInteraction(ctx context.Context, in analytics.FormInteractionInput) (*analytics.FormInteraction, error)
	Dashboard(ctx context.Context, limit int) (*analytics.Dashboard, error)
}

type analyticsService struct {
	store        *store.Store
	log          *logger.Logger
	popularLimit int
}

func NewAnalyticsService(st *store.Store, log *logger.Logger, popularLimit int) AnalyticsService {
	if popularLimit <= 0 {
		popularLimit = analytics.DefaultPopularCarsLimit
	}
	return &analyticsService{
		store:        st,
		log:          log.With("service", "AnalyticsService"),
		popularLimit: popularLimit,
	}
}

// LeadStats is built from a single scan so the status and source counts always
// add up to the total, even while leads are being created.
func (s *analyticsService) LeadStats(ctx context.Context) (*analytics.LeadStats, error) {
	all, err := s.store.Leads.Find(ctx, nil, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, len(leads.Statuses))
	bySource := map[string]int64{}
	for _, l := range all {
		byStatus[l.Status]++
		bySource[l.Source]++
	}
	return analytics.BuildLeadStats(int64(len(all)), byStatus, bySource), nil
}

func (s *analyticsService) RecordPageView(ctx context.Context, in analytics.PageViewInput) (*analytics.PageView, error) {
	pv, err := validation.PageView(in)
	if err != nil {
		return nil, err
	}
	pv.Timestamp = time.Now().UTC()
	if err := s.store.PageViews.Insert(ctx, &pv); err != nil {
		return nil, err
	}
	s.log.Debug("page view", "page", pv.Page, "ip", pv.IP, "user_agent", pv.UserAgent)
	return &pv, nil
}

func (s *analyticsService) RecordFormInteraction(ctx context.Context, in analytics.FormInteractionInput) (*analytics.FormInteraction, error) {
	fi, err := validation.FormInteraction(in)
	if err != nil {
		return nil, err
	}
	fi.Timestamp = time.Now().UTC()
	if err := s.store.FormInteractions.Insert(ctx, &fi); err != nil {
		return nil, err
	}
	s.log.Debug("form interaction", "form_type", fi.FormType, "action", fi.Action)
	return &fi, nil
}

// Dashboard counts run concurrently. Total leads and the popular-model ranking come
// from one scan, oldest first, so ties keep the model that was asked for first.
// A non-positive limit uses the configured popular-cars limit.
func (s *analyticsService) Dashboard(ctx context.Context, limit int) (*analytics.Dashboard, error) {
	if limit <= 0 {
		limit = s.popularLimit
	}
	var (
		out    analytics.Dashboard
		models []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalPageViews, err = s.store.PageViews.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		out.TotalFormInteractions, err = s.store.FormInteractions.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		all, err := s.store.Leads.Find(gctx, nil, store.FindOptions{SortBy: "created_at"})
		if err != nil {
			return err
		}
		out.TotalLeads = int64(len(all))
		models = make([]string, 0, len(all))
		for _, l := range all {
			models = append(models, l.Model)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.PopularCars = analytics.RankModels(models, limit)
	return &out, nil
}
