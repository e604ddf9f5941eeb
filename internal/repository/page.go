package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageQuery selects one page of a listing. Page and Size are 1-based and
// clamped to at least 1.
type PageQuery struct {
	Page int64
	Size int64
}

// Normalize clamps page and size to valid values.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 1
	}
	return q
}

// Skip returns the number of documents to skip for this page.
func (q PageQuery) Skip() int64 {
	return (q.Page - 1) * q.Size
}

// UpdateResult distinguishes "id not found" from "no field changed value".
type UpdateResult struct {
	Matched bool
	Changed bool
}

// findPage runs the shared paginated filter query: total count over the full
// filtered set, then one page sorted by ascending _id. ObjectIDs are
// time-prefixed, so the order is stable insertion order.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, q PageQuery) ([]T, int64, error) {
	q = q.Normalize()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(q.Skip()).
		SetLimit(q.Size)

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// setFields applies a field-level partial update ($set of exactly the given
// fields). An empty fields map degrades to an existence check.
func setFields(ctx context.Context, coll *mongo.Collection, filter bson.M, fields bson.M) (UpdateResult, error) {
	if len(fields) == 0 {
		n, err := coll.CountDocuments(ctx, filter)
		if err != nil {
			return UpdateResult{}, err
		}
		return UpdateResult{Matched: n > 0}, nil
	}

	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount > 0, Changed: res.ModifiedCount > 0}, nil
}
