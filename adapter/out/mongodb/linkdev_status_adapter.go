package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionStatusChecks = "status_checks"

// StatusCheckAdapter implements out.StatusCheckRepository using MongoDB.
type StatusCheckAdapter struct {
	collection *mongo.Collection
}

var _ out.StatusCheckRepository = (*StatusCheckAdapter)(nil)

func NewStatusCheckAdapter(db *mongo.Database) *StatusCheckAdapter {
	return &StatusCheckAdapter{collection: db.Collection(collectionStatusChecks)}
}

func (a *StatusCheckAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type statusCheckDocument struct {
	ID         string    `bson:"id"`
	ClientName string    `bson:"client_name"`
	Timestamp  time.Time `bson:"timestamp"`
}

func (a *StatusCheckAdapter) Create(ctx context.Context, check *domain.StatusCheck) error {
	_, err := a.collection.InsertOne(ctx, &statusCheckDocument{
		ID:         check.ID,
		ClientName: check.ClientName,
		Timestamp:  check.Timestamp,
	})
	return translate(err, "insert status check")
}

func (a *StatusCheckAdapter) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	cursor, err := a.collection.Find(ctx, bson.M{}, options.Find().SetLimit(1000))
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	defer cursor.Close(ctx)

	checks := []*domain.StatusCheck{}
	for cursor.Next(ctx) {
		var doc statusCheckDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode status check: %w", err)
		}
		checks = append(checks, &domain.StatusCheck{ID: doc.ID, ClientName: doc.ClientName, Timestamp: doc.Timestamp})
	}
	return checks, cursor.Err()
}
