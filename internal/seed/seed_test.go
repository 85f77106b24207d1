package seed

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

func newSeeder(t *testing.T, lock Locker) (*Seeder, *store.Store) {
	t.Helper()
	st, err := store.OpenBolt(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	log := logger.Nop()
	s := New(st,
		services.NewCarService(st, log),
		services.NewTestimonialService(st, log),
		services.NewBlogService(st, log),
		lock, log)
	return s, st
}

func counts(t *testing.T, st *store.Store) (int64, int64, int64) {
	t.Helper()
	ctx := context.Background()
	cars, err := st.Cars.Count(ctx, nil)
	require.NoError(t, err)
	testimonials, err := st.Testimonials.Count(ctx, nil)
	require.NoError(t, err)
	posts, err := st.BlogPosts.Count(ctx, nil)
	require.NoError(t, err)
	return cars, testimonials, posts
}

func TestLoadStarter_Decodes(t *testing.T) {
	starter, err := LoadStarter()
	require.NoError(t, err)
	require.Len(t, starter.Cars, 4)
	require.Len(t, starter.Testimonials, 3)
	require.Len(t, starter.BlogPosts, 3)
	require.NotNil(t, starter.BlogPosts[0].PublishedAt)
	require.True(t, starter.BlogPosts[0].PublishedAt.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestSeederRun_TwiceDoesNotDuplicate(t *testing.T) {
	s, st := newSeeder(t, nil)
	ctx := context.Background()

	first, err := s.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, Result{Cars: 4, Testimonials: 3, BlogPosts: 3}, first)

	second, err := s.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, Result{}, second)

	cars, testimonials, posts := counts(t, st)
	require.EqualValues(t, 4, cars)
	require.EqualValues(t, 3, testimonials)
	require.EqualValues(t, 3, posts)

	list, err := st.Cars.Find(ctx, nil, store.FindOptions{})
	require.NoError(t, err)
	models := make([]string, 0, len(list))
	for _, c := range list {
		models = append(models, c.Model)
		require.True(t, c.IsActive)
	}
	sort.Strings(models)
	require.Equal(t, []string{"Golf GTI", "Nivus", "Polo Track", "T-Cross"}, models)
}

func TestSeederRun_SeedsOnlyEmptyCollections(t *testing.T) {
	s, st := newSeeder(t, nil)
	ctx := context.Background()
	require.NoError(t, st.Cars.Insert(ctx, &catalog.Car{ID: "custom", Name: "Jetta", Model: "Jetta", Year: 2025, MonthlyPrice: "R$ 1", TotalCredit: "R$ 2", Installments: 1, IsActive: true}))

	res, err := s.Run(ctx)
	require.NoError(t, err)
	require.Zero(t, res.Cars)
	require.Equal(t, 3, res.Testimonials)

	cars, _, _ := counts(t, st)
	require.EqualValues(t, 1, cars)
}

type heldLock struct{}

func (heldLock) Acquire(context.Context) (func(context.Context) error, bool, error) {
	return nil, false, nil
}

func TestSeederRun_SkipsWhenLockHeld(t *testing.T) {
	s, st := newSeeder(t, heldLock{})
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Skipped)
	cars, _, _ := counts(t, st)
	require.Zero(t, cars)
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()
	key := "consorcio:test-seed-lock:" + time.Now().UTC().Format("150405.000000")

	a := NewRedisLocker(client, key, 5*time.Second)
	b := NewRedisLocker(client, key, 5*time.Second)

	release, ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, release(ctx))
	releaseB, ok, err := b.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, releaseB(ctx))
}
