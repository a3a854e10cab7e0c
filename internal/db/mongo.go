// Package db initializes the MongoDB connection and its indexes.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names.
const (
	ColUsers    = "users"
	ColProjects = "projects"
	ColSkills   = "skills"
)

// NewMongo connects to MongoDB, verifies the connection and ensures the
// indexes backing the uniqueness constraints.
func NewMongo(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(dbName)
	if err := ensureIndexes(ctx, database); err != nil {
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return client, database, nil
}

// Disconnect closes the MongoDB connection.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColProjects, bson.D{{Key: "title", Value: 1}}, true},
		{ColProjects, bson.D{{Key: "user", Value: 1}}, false},
		{ColProjects, bson.D{{Key: "createdAt", Value: -1}}, false},
		{ColSkills, bson.D{{Key: "title", Value: 1}}, true},
	}

	for _, i := range indexes {
		idxModel := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			idxModel.Options = options.Index().SetUnique(true)
		}
		if _, err := database.Collection(i.col).Indexes().CreateOne(ctx, idxModel); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}
