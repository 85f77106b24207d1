package store

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vwconsorcio/consorcio-backend/internal/data/db"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

type gormCollection[T any, PT recordPtr[T]] struct {
	db   *gorm.DB
	name string
}

func newGormCollection[T any, PT recordPtr[T]](gdb *gorm.DB, name string) Collection[T] {
	return &gormCollection[T, PT]{db: gdb, name: name}
}

// NewGormStore builds a Store over an already migrated SQL database.
func NewGormStore(gdb *gorm.DB, driver string) *Store {
	return &Store{
		Driver:           driver,
		Leads:            newGormCollection[leads.Lead](gdb, CollectionLeads),
		Cars:             newGormCollection[catalog.Car](gdb, CollectionCars),
		Testimonials:     newGormCollection[content.Testimonial](gdb, CollectionTestimonials),
		BlogPosts:        newGormCollection[content.BlogPost](gdb, CollectionBlogPosts),
		PageViews:        newGormCollection[analytics.PageView](gdb, CollectionPageViews),
		FormInteractions: newGormCollection[analytics.FormInteraction](gdb, CollectionFormInteractions),
		StatusChecks:     newGormCollection[analytics.StatusCheck](gdb, CollectionStatusChecks),
		close:            func() error { return db.Close(gdb) },
	}
}

func (c *gormCollection[T, PT]) Name() string { return c.name }

func (c *gormCollection[T, PT]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.ErrDuplicateKey
	}
	return passThrough(c.name+"."+op, err)
}

func (c *gormCollection[T, PT]) query(ctx context.Context, filter Filter) (*gorm.DB, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	q := c.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	return q, nil
}

func (c *gormCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	ensureID[T, PT](rec)
	return c.wrap("insert", c.db.WithContext(ctx).Create(rec).Error)
}

func (c *gormCollection[T, PT]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error) {
	if err := checkOptions(opts); err != nil {
		return nil, err
	}
	q, err := c.query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if opts.SortBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.SortBy}, Desc: opts.Descending})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	out := []*T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, c.wrap("find", err)
	}
	return out, nil
}

func (c *gormCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	q, err := c.query(ctx, filter)
	if err != nil {
		return nil, err
	}
	var rec T
	res := q.Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, c.wrap("find_one", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrNotFound
	}
	return &rec, nil
}

func (c *gormCollection[T, PT]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	set, err := writable(fields)
	if err != nil {
		return nil, err
	}
	var rec T
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Limit(1).Find(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		if len(set) == 0 {
			return nil
		}
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}(set)).Error; err != nil {
			return err
		}
		rec = *new(T)
		return tx.Where("id = ?", id).Limit(1).Find(&rec).Error
	})
	if err != nil {
		return nil, c.wrap("update", err)
	}
	return &rec, nil
}

func (c *gormCollection[T, PT]) Delete(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return c.wrap("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (c *gormCollection[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	q, err := c.query(ctx, filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

func (c *gormCollection[T, PT]) GroupCount(ctx context.Context, filter Filter, field string) (map[string]int64, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	q, err := c.query(ctx, filter)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		GroupKey   sql.NullString
		GroupCount int64
	}
	err = q.Select(`"` + field + `" AS group_key, COUNT(*) AS group_count`).
		Group(field).
		Scan(&rows).Error
	if err != nil {
		return nil, c.wrap("group_count", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey.String] += r.GroupCount
	}
	return out, nil
}
