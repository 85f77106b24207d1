package services

import (
	"context"
	"errors"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

type CarService interface {
	List(ctx context.Context, includeInactive bool) ([]*catalog.Car, error)
	Get(ctx context.Context, id string) (*catalog.Car, error)
	Create(ctx context.Context, in catalog.Input) (*catalog.Car, error)
	Update(ctx context.Context, id string, patch catalog.Patch) (*catalog.Car, error)
	Delete(ctx context.Context, id string) error
}

type carService struct {
	store *store.Store
	log   *logger.Logger
	clock *insertClock
}

func NewCarService(st *store.Store, log *logger.Logger) CarService {
	return &carService{store: st, log: log.With("service", "CarService"), clock: newInsertClock()}
}

// contentListLimit caps public catalog and content listings.
const contentListLimit = 100

// insertionOrder lists records oldest first.
var insertionOrder = store.FindOptions{Limit: contentListLimit, SortBy: "created_at"}

func activeOnly(field string, includeInactive bool) store.Filter {
	if includeInactive {
		return nil
	}
	return store.Filter{field: true}
}

func (s *carService) List(ctx context.Context, includeInactive bool) ([]*catalog.Car, error) {
	return s.store.Cars.Find(ctx, activeOnly("is_active", includeInactive), insertionOrder)
}

func (s *carService) Get(ctx context.Context, id string) (*catalog.Car, error) {
	return s.store.Cars.FindOne(ctx, store.Filter{"id": id})
}

// Create honors a caller-supplied id as long as it is unused.
func (s *carService) Create(ctx context.Context, in catalog.Input) (*catalog.Car, error) {
	car, err := validation.Car(in)
	if err != nil {
		return nil, err
	}
	car.CreatedAt = s.clock.Next()
	if err := s.store.Cars.Insert(ctx, &car); err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			return nil, errs.Invalid("car", "id", "is already in use")
		}
		return nil, err
	}
	s.log.Info("car created", "car_id", car.ID, "model", car.Model)
	return &car, nil
}

func (s *carService) Update(ctx context.Context, id string, patch catalog.Patch) (*catalog.Car, error) {
	patch, err := validation.CarPatch(patch)
	if err != nil {
		return nil, err
	}
	return s.store.Cars.Update(ctx, id, store.Fields(patch.Fields()))
}

func (s *carService) Delete(ctx context.Context, id string) error {
	if err := s.store.Cars.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("car deleted", "car_id", id)
	return nil
}
