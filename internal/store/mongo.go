package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/columbia-shop/columbia/backend/internal/models"
)

// NewMongoClient connects and pings MongoDB.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoAudit appends login attempts to the login_attempts collection.
type MongoAudit struct {
	col *mongo.Collection
}

func NewMongoAudit(db *mongo.Database) *MongoAudit {
	return &MongoAudit{col: db.Collection("login_attempts")}
}

func (s *MongoAudit) RecordLogin(ctx context.Context, attempt models.LoginAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, attempt); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}
