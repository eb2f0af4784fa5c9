package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect initializes the database connection and verifies it with a ping.
func Connect(uri, dbName string) (*mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the data model depends on:
// the unique bootcamp name, the geospatial location index, and the compound
// (bootcamp, user) uniqueness constraint that makes duplicate-review
// detection atomic with the write.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection("bootcamps").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("creating bootcamp indexes: %w", err)
	}

	_, err = database.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating review index: %w", err)
	}

	_, err = database.Collection("courses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bootcamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating course index: %w", err)
	}

	_, err = database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user index: %w", err)
	}
	return nil
}
