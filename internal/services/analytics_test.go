package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/pkg/pointers"
)

func TestLeadStats_EmptyStore(t *testing.T) {
	svc := NewAnalyticsService(newTestStore(t), testLogger(t), 0)
	stats, err := svc.LeadStats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Equal(t, map[string]int64{"new": 0, "contacted": 0, "converted": 0}, stats.ByStatus)
	require.Empty(t, stats.BySource)
}

func TestLeadStats_AndDashboardAggregates(t *testing.T) {
	st := newTestStore(t)
	log := testLogger(t)
	leadSvc := NewLeadService(st, log).(*leadService)
	svc := NewAnalyticsService(st, log, 2)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	models := []string{"T-Cross", "Nivus", "Nivus", "T-Cross", "Polo Track"}
	for i, m := range models {
		at := base.Add(time.Duration(i) * time.Minute)
		leadSvc.now = func() time.Time { return at }
		in := validLead()
		in.Model = m
		if i == 0 {
			in.Source = leads.SourceCarInterest
		}
		lead, err := leadSvc.Create(ctx, in)
		require.NoError(t, err)
		if i == 1 {
			_, err = leadSvc.Update(ctx, lead.ID, leads.Patch{Status: pointers.Ptr(leads.StatusConverted)})
			require.NoError(t, err)
		}
	}

	stats, err := svc.LeadStats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, stats.Total)
	require.EqualValues(t, 4, stats.New)
	require.EqualValues(t, 1, stats.Converted)
	var sum int64
	for _, n := range stats.ByStatus {
		sum += n
	}
	require.Equal(t, stats.Total, sum)
	require.Equal(t, map[string]int64{leads.SourceHeroForm: 4, leads.SourceCarInterest: 1}, stats.BySource)

	_, err = svc.RecordPageView(ctx, analytics.PageViewInput{Page: "/", IP: "10.0.0.1"})
	require.NoError(t, err)
	_, err = svc.RecordFormInteraction(ctx, analytics.FormInteractionInput{FormType: "hero", Action: "submit"})
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, 0)
	require.NoError(t, err)
	require.EqualValues(t, 5, dash.TotalLeads)
	require.EqualValues(t, 1, dash.TotalPageViews)
	require.EqualValues(t, 1, dash.TotalFormInteractions)
	require.Equal(t, []analytics.ModelCount{{Model: "T-Cross", Count: 2}, {Model: "Nivus", Count: 2}}, dash.PopularCars)
}

func TestLeadStats_CountsAgreeDuringWrites(t *testing.T) {
	st := newTestStore(t)
	log := testLogger(t)
	leadSvc := NewLeadService(st, log)
	svc := NewAnalyticsService(st, log, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 60; i++ {
			in := validLead()
			if i%2 == 0 {
				in.Source = leads.SourceBlogInterest
			}
			lead, err := leadSvc.Create(ctx, in)
			if err != nil {
				t.Errorf("create lead: %v", err)
				return
			}
			if i%3 == 0 {
				if _, err := leadSvc.Update(ctx, lead.ID, leads.Patch{Status: pointers.Ptr(leads.StatusContacted)}); err != nil {
					t.Errorf("update lead: %v", err)
					return
				}
			}
		}
	}()

	sum := func(m map[string]int64) int64 {
		var n int64
		for _, v := range m {
			n += v
		}
		return n
	}
	for i := 0; i < 80; i++ {
		stats, err := svc.LeadStats(ctx)
		require.NoError(t, err)
		require.Equal(t, stats.Total, sum(stats.ByStatus), "by_status must add up to total")
		require.Equal(t, stats.Total, sum(stats.BySource), "by_source must add up to total")
		require.Equal(t, stats.Total, stats.New+stats.Contacted+stats.Converted)

		dash, err := svc.Dashboard(ctx, 10)
		require.NoError(t, err)
		var ranked int64
		for _, mc := range dash.PopularCars {
			ranked += mc.Count
		}
		require.Equal(t, dash.TotalLeads, ranked)
	}
	wg.Wait()
}

func TestRecordPageView_RequiresPage(t *testing.T) {
	svc := NewAnalyticsService(newTestStore(t), testLogger(t), 0)
	_, err := svc.RecordPageView(context.Background(), analytics.PageViewInput{})
	require.ErrorIs(t, err, errs.ErrValidation)
}
