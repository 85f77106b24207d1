package services

import (
	"context"
	"errors"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

type TestimonialService interface {
	List(ctx context.Context, includeInactive bool) ([]*content.Testimonial, error)
	Create(ctx context.Context, in content.TestimonialInput) (*content.Testimonial, error)
	Update(ctx context.Context, id string, patch content.TestimonialPatch) (*content.Testimonial, error)
}

type testimonialService struct {
	store *store.Store
	log   *logger.Logger
	clock *insertClock
}

func NewTestimonialService(st *store.Store, log *logger.Logger) TestimonialService {
	return &testimonialService{store: st, log: log.With("service", "TestimonialService"), clock: newInsertClock()}
}

func (s *testimonialService) List(ctx context.Context, includeInactive bool) ([]*content.Testimonial, error) {
	return s.store.Testimonials.Find(ctx, activeOnly("is_active", includeInactive), insertionOrder)
}

func (s *testimonialService) Create(ctx context.Context, in content.TestimonialInput) (*content.Testimonial, error) {
	t, err := validation.Testimonial(in)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = s.clock.Next()
	if err := s.store.Testimonials.Insert(ctx, &t); err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			return nil, errs.Invalid("testimonial", "id", "is already in use")
		}
		return nil, err
	}
	return &t, nil
}

func (s *testimonialService) Update(ctx context.Context, id string, patch content.TestimonialPatch) (*content.Testimonial, error) {
	current, err := s.store.Testimonials.FindOne(ctx, store.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	patch, err = validation.TestimonialPatch(patch, *current)
	if err != nil {
		return nil, err
	}
	return s.store.Testimonials.Update(ctx, id, store.Fields(patch.Fields()))
}
