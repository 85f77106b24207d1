// Package store is the record store shared by every service. A Collection is a typed,
// per-entity view; the backend behind it is chosen at startup.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

// Record is implemented by the pointer of every stored entity.
type Record interface {
	RecordID() string
	SetRecordID(id string)
}

type recordPtr[T any] interface {
	*T
	Record
}

// Filter matches records whose fields equal every given value. Keys are wire names.
type Filter map[string]any

// Fields is a partial overwrite keyed by wire name.
type Fields map[string]any

type FindOptions struct {
	Limit      int
	SortBy     string
	Descending bool
}

type Collection[T any] interface {
	Name() string
	// Insert assigns a fresh id when the record has none.
	Insert(ctx context.Context, rec *T) error
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Update(ctx context.Context, id string, fields Fields) (*T, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
	GroupCount(ctx context.Context, filter Filter, field string) (map[string]int64, error)
}

const (
	CollectionLeads            = "leads"
	CollectionCars             = "cars"
	CollectionTestimonials     = "testimonials"
	CollectionBlogPosts        = "blog_posts"
	CollectionPageViews        = "page_views"
	CollectionFormInteractions = "form_interactions"
	CollectionStatusChecks     = "status_checks"
)

type Store struct {
	Driver           string
	Leads            Collection[leads.Lead]
	Cars             Collection[catalog.Car]
	Testimonials     Collection[content.Testimonial]
	BlogPosts        Collection[content.BlogPost]
	PageViews        Collection[analytics.PageView]
	FormInteractions Collection[analytics.FormInteraction]
	StatusChecks     Collection[analytics.StatusCheck]

	close func() error
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

var fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var errBadField = errors.New("invalid field name")

func checkField(name string) error {
	if !fieldNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", errBadField, name)
	}
	return nil
}

func checkFilter(f Filter) error {
	for k := range f {
		if err := checkField(k); err != nil {
			return err
		}
	}
	return nil
}

func checkOptions(opts FindOptions) error {
	if opts.SortBy == "" {
		return nil
	}
	return checkField(opts.SortBy)
}

// writable drops the id, which is never overwritten, and validates the rest.
func writable(fields Fields) (Fields, error) {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		if err := checkField(k); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func ensureID[T any, PT recordPtr[T]](rec *T) {
	p := PT(rec)
	if p.RecordID() == "" {
		p.SetRecordID(uuid.NewString())
	}
}

// passThrough keeps the store's own sentinels intact and wraps everything else.
func passThrough(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrDuplicateKey) || errors.Is(err, errBadField) {
		return err
	}
	return errs.Unavailable(op, err)
}

func groupKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
