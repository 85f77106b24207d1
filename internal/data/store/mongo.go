package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

type mongoCollection[T any, PT recordPtr[T]] struct {
	coll *mongo.Collection
}

func newMongoCollection[T any, PT recordPtr[T]](db *mongo.Database, name string) Collection[T] {
	return &mongoCollection[T, PT]{coll: db.Collection(name)}
}

// OpenMongo connects to the document database. Records keep their own string id
// next to Mongo's _id; both id and blog_posts.slug get unique indexes.
func OpenMongo(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Unavailable("mongo.connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Unavailable("mongo.ping", err)
	}
	db := client.Database(dbName)
	if err := ensureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Unavailable("mongo.indexes", err)
	}
	return &Store{
		Driver:           "mongo",
		Leads:            newMongoCollection[leads.Lead](db, CollectionLeads),
		Cars:             newMongoCollection[catalog.Car](db, CollectionCars),
		Testimonials:     newMongoCollection[content.Testimonial](db, CollectionTestimonials),
		BlogPosts:        newMongoCollection[content.BlogPost](db, CollectionBlogPosts),
		PageViews:        newMongoCollection[analytics.PageView](db, CollectionPageViews),
		FormInteractions: newMongoCollection[analytics.FormInteraction](db, CollectionFormInteractions),
		StatusChecks:     newMongoCollection[analytics.StatusCheck](db, CollectionStatusChecks),
		close:            func() error { return client.Disconnect(context.Background()) },
	}, nil
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	for _, name := range allCollections {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, unique("id")); err != nil {
			return fmt.Errorf("index %s.id: %w", name, err)
		}
	}
	if _, err := db.Collection(CollectionBlogPosts).Indexes().CreateOne(ctx, unique("slug")); err != nil {
		return fmt.Errorf("index %s.slug: %w", CollectionBlogPosts, err)
	}
	return nil
}

func toBSON(f map[string]any) bson.M {
	out := bson.M{}
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (c *mongoCollection[T, PT]) Name() string { return c.coll.Name() }

func (c *mongoCollection[T, PT]) wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateKey
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}
	return passThrough(c.coll.Name()+"."+op, err)
}

func (c *mongoCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	ensureID[T, PT](rec)
	_, err := c.coll.InsertOne(ctx, rec)
	return c.wrap("insert", err)
}

func (c *mongoCollection[T, PT]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	if err := checkOptions(opts); err != nil {
		return nil, err
	}
	findOpts := options.Find()
	if opts.SortBy != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: dir}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	cur, err := c.coll.Find(ctx, toBSON(filter), findOpts)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, c.wrap("find", err)
	}
	return out, nil
}

func (c *mongoCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	rec := new(T)
	if err := c.coll.FindOne(ctx, toBSON(filter)).Decode(rec); err != nil {
		return nil, c.wrap("find_one", err)
	}
	return rec, nil
}

func (c *mongoCollection[T, PT]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	set, err := writable(fields)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return c.FindOne(ctx, Filter{"id": id})
	}
	rec := new(T)
	err = c.coll.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": toBSON(set)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(rec)
	if err != nil {
		return nil, c.wrap("update", err)
	}
	return rec, nil
}

func (c *mongoCollection[T, PT]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return c.wrap("delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (c *mongoCollection[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	if err := checkFilter(filter); err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

func (c *mongoCollection[T, PT]) GroupCount(ctx context.Context, filter Filter, field string) (map[string]int64, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	if err := checkField(field); err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: toBSON(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, c.wrap("group_count", err)
	}
	var rows []struct {
		Key   any   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, c.wrap("group_count", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[groupKey(r.Key)] += r.Count
	}
	return out, nil
}
