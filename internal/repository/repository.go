package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
)

// CRUD is the generic persistence contract the resource handler factory is
// built on.
type CRUD[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id bson.ObjectID) (*T, error)
	FindAll(ctx context.Context, features *Features) ([]T, error)
	Replace(ctx context.Context, id bson.ObjectID, doc *T) (*T, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
}

// Repository is a generic MongoDB-backed document repository bound to one
// collection.
type Repository[T any] struct {
	col *mongo.Collection
}

// NewRepository builds a repository over the named collection.
func NewRepository[T any](database *mongo.Database, collection string) *Repository[T] {
	return &Repository[T]{col: database.Collection(collection)}
}

// ParseID decodes a hex identifier, wrapping failures so the error
// translator recognizes the invalid-identifier shape.
func ParseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", errs.ErrInvalidID, hex)
	}
	return id, nil
}

// Create inserts a new document, assigning identity and defaults first.
func (r *Repository[T]) Create(ctx context.Context, doc *T) error {
	if d, ok := any(doc).(model.Document); ok {
		d.EnsureDefaults()
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// FindByID returns the document with the given identity, or nil when no
// document matches.
func (r *Repository[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	var doc T
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll runs the query described by the features against the full
// collection. An empty result is a valid success.
func (r *Repository[T]) FindAll(ctx context.Context, features *Features) ([]T, error) {
	cursor, err := r.col.Find(ctx, features.Filter, features.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Replace overwrites the document with the given identity and returns the
// post-update state, or nil when no document matches.
func (r *Repository[T]) Replace(ctx context.Context, id bson.ObjectID, doc *T) (*T, error) {
	var updated T
	err := r.col.FindOneAndReplace(
		ctx,
		bson.D{{Key: "_id", Value: id}},
		doc,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteByID removes the document with the given identity and reports
// whether anything was removed.
func (r *Repository[T]) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
