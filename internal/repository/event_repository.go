package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "evently/internal/errors"
	"evently/internal/model"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q PageQuery) ([]model.Event, int64, error)
	ListForOwner(ctx context.Context, ownerID string, q PageQuery) ([]model.Event, int64, error)
}

type eventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository builds a mongo-backed event repository.
func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{coll: db.Collection("events")}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	var event model.Event
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UpdateResult{}, apperrors.ErrInvalidID
	}
	return setFields(ctx, r.coll, bson.M{"_id": oid}, bson.M(fields))
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperrors.ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *eventRepository) List(ctx context.Context, q PageQuery) ([]model.Event, int64, error) {
	return findPage[model.Event](ctx, r.coll, bson.M{}, q)
}

func (r *eventRepository) ListForOwner(ctx context.Context, ownerID string, q PageQuery) ([]model.Event, int64, error) {
	return findPage[model.Event](ctx, r.coll, bson.M{"ownerId": ownerID}, q)
}
