package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

var allCollections = []string{
	CollectionLeads,
	CollectionCars,
	CollectionTestimonials,
	CollectionBlogPosts,
	CollectionPageViews,
	CollectionFormInteractions,
	CollectionStatusChecks,
}

type boltCollection[T any, PT recordPtr[T]] struct {
	db     *bolt.DB
	bucket []byte
}

func newBoltCollection[T any, PT recordPtr[T]](bdb *bolt.DB, name string) Collection[T] {
	return &boltCollection[T, PT]{db: bdb, bucket: []byte(name)}
}

// OpenBolt opens (or creates) a single-file store with one bucket per collection.
func OpenBolt(path string) (*Store, error) {
	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errs.Unavailable("bolt.open", err)
	}
	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range allCollections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, errs.Unavailable("bolt.open", err)
	}
	return &Store{
		Driver:           "bolt",
		Leads:            newBoltCollection[leads.Lead](bdb, CollectionLeads),
		Cars:             newBoltCollection[catalog.Car](bdb, CollectionCars),
		Testimonials:     newBoltCollection[content.Testimonial](bdb, CollectionTestimonials),
		BlogPosts:        newBoltCollection[content.BlogPost](bdb, CollectionBlogPosts),
		PageViews:        newBoltCollection[analytics.PageView](bdb, CollectionPageViews),
		FormInteractions: newBoltCollection[analytics.FormInteraction](bdb, CollectionFormInteractions),
		StatusChecks:     newBoltCollection[analytics.StatusCheck](bdb, CollectionStatusChecks),
		close:            bdb.Close,
	}, nil
}

func (c *boltCollection[T, PT]) Name() string { return string(c.bucket) }

func (c *boltCollection[T, PT]) wrap(op string, err error) error {
	return passThrough(string(c.bucket)+"."+op, err)
}

func (c *boltCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return c.wrap("insert", err)
	}
	ensureID[T, PT](rec)
	id := []byte(PT(rec).RecordID())
	data, err := json.Marshal(rec)
	if err != nil {
		return c.wrap("insert", err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b.Get(id) != nil {
			return errs.ErrDuplicateKey
		}
		return b.Put(id, data)
	})
	return c.wrap("insert", err)
}

// scan collects the documents matching filter, in key order.
func (c *boltCollection[T, PT]) scan(ctx context.Context, filter Filter) ([]docEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	want, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	var out []docEntry
	err = c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).ForEach(func(k, v []byte) error {
			doc, err := decodeDocument(v)
			if err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			if doc.matches(want) {
				raw := make([]byte, len(v))
				copy(raw, v)
				out = append(out, docEntry{doc: doc, raw: raw})
			}
			return nil
		})
	})
	return out, err
}

func (c *boltCollection[T, PT]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error) {
	if err := checkOptions(opts); err != nil {
		return nil, err
	}
	entries, err := c.scan(ctx, filter)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	sortEntries(entries, opts.SortBy, opts.Descending)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	out := make([]*T, 0, len(entries))
	for _, e := range entries {
		rec := new(T)
		if err := json.Unmarshal(e.raw, rec); err != nil {
			return nil, c.wrap("find", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *boltCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	recs, err := c.Find(ctx, filter, FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errs.ErrNotFound
	}
	return recs[0], nil
}

func (c *boltCollection[T, PT]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.wrap("update", err)
	}
	set, err := writable(fields)
	if err != nil {
		return nil, err
	}
	patch, err := normalizeFilter(Filter(set))
	if err != nil {
		return nil, c.wrap("update", err)
	}
	rec := new(T)
	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		current := b.Get([]byte(id))
		if current == nil {
			return errs.ErrNotFound
		}
		doc, err := decodeDocument(current)
		if err != nil {
			return err
		}
		for k, v := range patch {
			doc[k] = v
		}
		merged, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(merged, rec); err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return nil, c.wrap("update", err)
	}
	return rec, nil
}

func (c *boltCollection[T, PT]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return c.wrap("delete", err)
	}
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b.Get([]byte(id)) == nil {
			return errs.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
	return c.wrap("delete", err)
}

func (c *boltCollection[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	entries, err := c.scan(ctx, filter)
	if err != nil {
		return 0, c.wrap("count", err)
	}
	return int64(len(entries)), nil
}

func (c *boltCollection[T, PT]) GroupCount(ctx context.Context, filter Filter, field string) (map[string]int64, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	entries, err := c.scan(ctx, filter)
	if err != nil {
		return nil, c.wrap("group_count", err)
	}
	out := map[string]int64{}
	for _, e := range entries {
		out[groupKey(e.doc[field])]++
	}
	return out, nil
}
