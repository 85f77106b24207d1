// Package seed fills the catalog and content collections with starter records when
// they are empty. It is run explicitly by the entrypoint, never on import.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

//go:embed starter.yaml
var starterYAML []byte

type Starter struct {
	Cars         []catalog.Input            `yaml:"cars"`
	Testimonials []content.TestimonialInput `yaml:"testimonials"`
	BlogPosts    []content.BlogPostInput    `yaml:"blog_posts"`
}

func LoadStarter() (*Starter, error) {
	var s Starter
	if err := yaml.Unmarshal(starterYAML, &s); err != nil {
		return nil, fmt.Errorf("decode starter content: %w", err)
	}
	return &s, nil
}

// Result counts what a pass inserted.
type Result struct {
	Cars         int
	Testimonials int
	BlogPosts    int
	Skipped      bool
}

type Seeder struct {
	store        *store.Store
	cars         services.CarService
	testimonials services.TestimonialService
	blog         services.BlogService
	lock         Locker
	log          *logger.Logger
}

func New(st *store.Store, cars services.CarService, testimonials services.TestimonialService, blog services.BlogService, lock Locker, log *logger.Logger) *Seeder {
	if lock == nil {
		lock = NoopLocker{}
	}
	return &Seeder{
		store:        st,
		cars:         cars,
		testimonials: testimonials,
		blog:         blog,
		lock:         lock,
		log:          log.With("service", "Seeder"),
	}
}

// Run inserts the starter set into every collection that is currently empty.
// Collections that already hold records are left untouched.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result
	release, ok, err := s.lock.Acquire(ctx)
	if err != nil {
		return res, fmt.Errorf("acquire seed lock: %w", err)
	}
	if !ok {
		s.log.Info("seed lock held elsewhere, skipping")
		res.Skipped = true
		return res, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("release seed lock", "error", err)
		}
	}()

	starter, err := LoadStarter()
	if err != nil {
		return res, err
	}

	if res.Cars, err = seedIfEmpty(ctx, s.store.Cars, starter.Cars, s.cars.Create); err != nil {
		return res, fmt.Errorf("seed cars: %w", err)
	}
	if res.Testimonials, err = seedIfEmpty(ctx, s.store.Testimonials, starter.Testimonials, s.testimonials.Create); err != nil {
		return res, fmt.Errorf("seed testimonials: %w", err)
	}
	if res.BlogPosts, err = seedIfEmpty(ctx, s.store.BlogPosts, starter.BlogPosts, s.blog.Create); err != nil {
		return res, fmt.Errorf("seed blog posts: %w", err)
	}
	s.log.Info("seed pass done", "cars", res.Cars, "testimonials", res.Testimonials, "blog_posts", res.BlogPosts)
	return res, nil
}

func seedIfEmpty[T any, In any, Out any](ctx context.Context, coll store.Collection[T], inputs []In, create func(context.Context, In) (*Out, error)) (int, error) {
	n, err := coll.Count(ctx, nil)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, in := range inputs {
		if _, err := create(ctx, in); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}
