package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vwconsorcio/consorcio-backend/internal/data/db"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

type opener func(t *testing.T) *Store

func openBoltStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openSQLiteStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "store.sqlite"), logger.Nop())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, db.AutoMigrateAll(gdb))
	s := NewGormStore(gdb, DriverSQLite)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openPostgresStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	s, err := Open(context.Background(), Config{Driver: DriverPostgres, PostgresDSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openMongoStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URL")
	if uri == "" {
		t.Skip("TEST_MONGO_URL not set")
	}
	name := "consorcio_test_" + time.Now().UTC().Format("20060102150405")
	s, err := OpenMongo(context.Background(), uri, name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s *Store)) {
	backends := map[string]opener{
		DriverBolt:     openBoltStore,
		DriverSQLite:   openSQLiteStore,
		DriverPostgres: openPostgresStore,
		DriverMongo:    openMongoStore,
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func uniqueTag() string {
	return time.Now().UTC().Format("150405.000000000")
}

func TestCollection_InsertAssignsIDAndUpdatesPartially(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		car := &catalog.Car{
			Name:         "Golf GTI",
			Model:        "Golf GTI " + uniqueTag(),
			Year:         2025,
			MonthlyPrice: "R$ 1.899",
			TotalCredit:  "R$ 180.000",
			Installments: 80,
			Highlights:   []string{"Motor 2.0 TSI", "Câmbio DSG", "Teto solar"},
			IsActive:     true,
		}
		require.NoError(t, s.Cars.Insert(ctx, car))
		require.NotEmpty(t, car.ID)

		got, err := s.Cars.FindOne(ctx, Filter{"id": car.ID})
		require.NoError(t, err)
		require.Equal(t, []string{"Motor 2.0 TSI", "Câmbio DSG", "Teto solar"}, []string(got.Highlights))

		updated, err := s.Cars.Update(ctx, car.ID, Fields{"is_active": false, "installments": 72, "id": "hijack"})
		require.NoError(t, err)
		require.Equal(t, car.ID, updated.ID)
		require.False(t, updated.IsActive)
		require.Equal(t, 72, updated.Installments)
		require.Equal(t, car.Name, updated.Name)

		inactive, err := s.Cars.Count(ctx, Filter{"model": car.Model, "is_active": false})
		require.NoError(t, err)
		require.EqualValues(t, 1, inactive)
	})
}

func TestCollection_MissingRecords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		_, err := s.Leads.FindOne(ctx, Filter{"id": "missing-" + uniqueTag()})
		require.ErrorIs(t, err, errs.ErrNotFound)

		_, err = s.Leads.Update(ctx, "missing", Fields{"status": leads.StatusContacted})
		require.ErrorIs(t, err, errs.ErrNotFound)

		require.ErrorIs(t, s.Cars.Delete(ctx, "missing"), errs.ErrNotFound)
	})
}

func TestCollection_DeleteAndDuplicateID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		id := "car-" + uniqueTag()
		car := &catalog.Car{ID: id, Name: "Polo", Model: "Polo", Year: 2025, MonthlyPrice: "x", TotalCredit: "y", Installments: 60, IsActive: true}
		require.NoError(t, s.Cars.Insert(ctx, car))

		dup := *car
		require.ErrorIs(t, s.Cars.Insert(ctx, &dup), errs.ErrDuplicateKey)

		require.NoError(t, s.Cars.Delete(ctx, id))
		_, err := s.Cars.FindOne(ctx, Filter{"id": id})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestCollection_FindSortLimitAndGroupCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		city := "Belém " + uniqueTag()
		base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
		statuses := []string{leads.StatusNew, leads.StatusContacted, leads.StatusNew}
		for i, status := range statuses {
			require.NoError(t, s.Leads.Insert(ctx, &leads.Lead{
				Name:      "Lead",
				WhatsApp:  "91992379276",
				City:      city,
				Model:     "Nivus",
				Source:    leads.SourceHeroForm,
				Status:    status,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}))
		}

		recent, err := s.Leads.Find(ctx, Filter{"city": city}, FindOptions{SortBy: "created_at", Descending: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, recent, 2)
		require.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Hour)))
		require.True(t, recent[1].CreatedAt.Equal(base.Add(time.Hour)))

		byStatus, err := s.Leads.GroupCount(ctx, Filter{"city": city}, "status")
		require.NoError(t, err)
		require.Equal(t, map[string]int64{leads.StatusNew: 2, leads.StatusContacted: 1}, byStatus)

		empty, err := s.Leads.Find(ctx, Filter{"city": "nowhere-" + uniqueTag()}, FindOptions{})
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Empty(t, empty)
	})
}

func TestCollection_RejectsBadFieldNames(t *testing.T) {
	s := openBoltStore(t)
	_, err := s.Leads.Find(context.Background(), Filter{"name; DROP": "x"}, FindOptions{})
	require.Error(t, err)
	_, err = s.Leads.GroupCount(context.Background(), nil, "Status")
	require.Error(t, err)
}

func TestCollection_StoreErrorsAreUnavailable(t *testing.T) {
	s := openBoltStore(t)
	require.NoError(t, s.Close())
	_, err := s.Leads.Count(context.Background(), nil)
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
}
