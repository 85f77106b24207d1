package services

import (
	"context"
	"errors"
	"time"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/validation"
)

type BlogService interface {
	List(ctx context.Context, includeUnpublished bool) ([]*content.BlogPost, error)
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*content.BlogPost, error)
	Create(ctx context.Context, in content.BlogPostInput) (*content.BlogPost, error)
	Update(ctx context.Context, id string, patch content.BlogPostPatch) (*content.BlogPost, error)
}

type blogService struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewBlogService(st *store.Store, log *logger.Logger) BlogService {
	return &blogService{store: st, log: log.With("service", "BlogService"), now: time.Now}
}

func (s *blogService) List(ctx context.Context, includeUnpublished bool) ([]*content.BlogPost, error) {
	return s.store.BlogPosts.Find(ctx, activeOnly("is_published", includeUnpublished), store.FindOptions{
		SortBy:     "published_at",
		Descending: true,
		Limit:      contentListLimit,
	})
}

// GetBySlug hides unpublished posts unless asked; a hidden post is reported as not found.
func (s *blogService) GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*content.BlogPost, error) {
	filter := store.Filter{"slug": slug}
	if !includeUnpublished {
		filter["is_published"] = true
	}
	return s.store.BlogPosts.FindOne(ctx, filter)
}

func (s *blogService) slugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	post, err := s.store.BlogPosts.FindOne(ctx, store.Filter{"slug": slug})
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return post.ID != exceptID, nil
}

func (s *blogService) Create(ctx context.Context, in content.BlogPostInput) (*content.BlogPost, error) {
	post, err := validation.BlogPost(in)
	if err != nil {
		return nil, err
	}
	taken, err := s.slugTaken(ctx, post.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.ErrDuplicateSlug
	}
	if post.PublishedAt.IsZero() {
		post.PublishedAt = s.now().UTC()
	}
	if err := s.store.BlogPosts.Insert(ctx, &post); err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			// the unique slug index closes the race between the check and the insert;
			// otherwise the collision is on a caller-supplied id
			if taken, terr := s.slugTaken(ctx, post.Slug, ""); terr == nil && taken {
				return nil, errs.ErrDuplicateSlug
			}
			return nil, errs.Invalid("blog post", "id", "is already in use")
		}
		return nil, err
	}
	s.log.Info("blog post created", "post_id", post.ID, "slug", post.Slug)
	return &post, nil
}

func (s *blogService) Update(ctx context.Context, id string, patch content.BlogPostPatch) (*content.BlogPost, error) {
	patch, err := validation.BlogPostPatch(patch)
	if err != nil {
		return nil, err
	}
	if patch.Slug != nil {
		taken, err := s.slugTaken(ctx, *patch.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.ErrDuplicateSlug
		}
	}
	post, err := s.store.BlogPosts.Update(ctx, id, store.Fields(patch.Fields()))
	if errors.Is(err, errs.ErrDuplicateKey) {
		return nil, errs.ErrDuplicateSlug
	}
	return post, err
}
