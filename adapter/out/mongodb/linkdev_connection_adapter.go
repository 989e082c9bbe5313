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

const collectionConnections = "connections"

// ConnectionAdapter implements out.ConnectionRepository using MongoDB.
type ConnectionAdapter struct {
	collection *mongo.Collection
}

var _ out.ConnectionRepository = (*ConnectionAdapter)(nil)

func NewConnectionAdapter(db *mongo.Database) *ConnectionAdapter {
	return &ConnectionAdapter{collection: db.Collection(collectionConnections)}
}

// EnsureIndexes makes the unordered pair unique. Records written before the
// pair key existed are left out of the constraint by the partial filter.
func (a *ConnectionAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "pair", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"pair": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "status", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type connectionDocument struct {
	ID         string    `bson:"id"`
	Pair       string    `bson:"pair,omitempty"`
	SenderID   string    `bson:"sender_id"`
	ReceiverID string    `bson:"receiver_id"`
	Message    *string   `bson:"message"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (d *connectionDocument) toDomain() *domain.ConnectionRequest {
	return &domain.ConnectionRequest{
		ID:         d.ID,
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		Message:    d.Message,
		Status:     domain.ConnectionStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (a *ConnectionAdapter) Create(ctx context.Context, conn *domain.ConnectionRequest) error {
	_, err := a.collection.InsertOne(ctx, &connectionDocument{
		ID:         conn.ID,
		Pair:       pairKey(conn.SenderID, conn.ReceiverID),
		SenderID:   conn.SenderID,
		ReceiverID: conn.ReceiverID,
		Message:    conn.Message,
		Status:     string(conn.Status),
		CreatedAt:  conn.CreatedAt,
		UpdatedAt:  conn.UpdatedAt,
	})
	return translate(err, "insert connection")
}

func (a *ConnectionAdapter) findOne(ctx context.Context, filter bson.M) (*domain.ConnectionRequest, error) {
	var doc connectionDocument
	if err := a.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "get connection")
	}
	return doc.toDomain(), nil
}

func (a *ConnectionAdapter) FindBetween(ctx context.Context, userA, userB string) (*domain.ConnectionRequest, error) {
	return a.findOne(ctx, betweenFilter(userA, userB))
}

func (a *ConnectionAdapter) GetPendingForReceiver(ctx context.Context, id, receiverID string) (*domain.ConnectionRequest, error) {
	return a.findOne(ctx, bson.M{
		"id":          id,
		"receiver_id": receiverID,
		"status":      string(domain.ConnectionPending),
	})
}

func (a *ConnectionAdapter) find(ctx context.Context, filter bson.M) ([]*domain.ConnectionRequest, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := a.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find connections: %w", err)
	}
	defer cursor.Close(ctx)

	conns := []*domain.ConnectionRequest{}
	for cursor.Next(ctx) {
		var doc connectionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode connection: %w", err)
		}
		conns = append(conns, doc.toDomain())
	}
	return conns, cursor.Err()
}

func (a *ConnectionAdapter) ListPendingForReceiver(ctx context.Context, receiverID string) ([]*domain.ConnectionRequest, error) {
	return a.find(ctx, bson.M{"receiver_id": receiverID, "status": string(domain.ConnectionPending)})
}

func (a *ConnectionAdapter) ListAccepted(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	return a.find(ctx, acceptedFilter(userID))
}

func (a *ConnectionAdapter) UpdateStatus(ctx context.Context, id string, from, to domain.ConnectionStatus, now time.Time) error {
	result, err := a.collection.UpdateOne(ctx,
		bson.M{"id": id, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": now}},
	)
	if err != nil {
		return translate(err, "update connection")
	}
	if result.MatchedCount == 0 {
		return out.ErrNotFound
	}
	return nil
}

func (a *ConnectionAdapter) Reopen(ctx context.Context, id, senderID, receiverID string, message *string, now time.Time) error {
	result, err := a.collection.UpdateOne(ctx,
		bson.M{"id": id, "status": string(domain.ConnectionDeclined)},
		bson.M{"$set": bson.M{
			"pair":        pairKey(senderID, receiverID),
			"sender_id":   senderID,
			"receiver_id": receiverID,
			"message":     message,
			"status":      string(domain.ConnectionPending),
			"updated_at":  now,
		}},
	)
	if err != nil {
		return translate(err, "reopen connection")
	}
	if result.MatchedCount == 0 {
		return out.ErrNotFound
	}
	return nil
}

func (a *ConnectionAdapter) CountAccepted(ctx context.Context, userID string) (int64, error) {
	return count(ctx, a.collection, acceptedFilter(userID))
}

func (a *ConnectionAdapter) CountAllAccepted(ctx context.Context) (int64, error) {
	return count(ctx, a.collection, bson.M{"status": string(domain.ConnectionAccepted)})
}
