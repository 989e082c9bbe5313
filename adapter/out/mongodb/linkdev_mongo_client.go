// Package mongodb implements the repository ports on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MASTER-2222/linkedin/core/port/out"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, url string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// clientOptions decodes nested documents as maps so free-form profile
// fields round-trip as plain JSON objects instead of primitive.D.
func clientOptions(url string) *options.ClientOptions {
	return options.Client().
		ApplyURI(url).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// indexer is implemented by every adapter that owns a collection.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// Store bundles the adapters of one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Users        *UserAdapter
	Jobs         *JobAdapter
	Applications *ApplicationAdapter
	Connections  *ConnectionAdapter
	Posts        *PostAdapter
	Comments     *CommentAdapter
	Likes        *LikeAdapter
	StatusChecks *StatusCheckAdapter
	Transactor   *Transactor
}

// NewStore builds adapters on database. transactions selects whether
// multi-document writes run inside a session transaction (replica set required).
func NewStore(client *mongo.Client, database string, transactions bool) *Store {
	db := client.Database(database)
	return &Store{
		client:       client,
		db:           db,
		Users:        NewUserAdapter(db),
		Jobs:         NewJobAdapter(db),
		Applications: NewApplicationAdapter(db),
		Connections:  NewConnectionAdapter(db),
		Posts:        NewPostAdapter(db),
		Comments:     NewCommentAdapter(db),
		Likes:        NewLikeAdapter(db),
		StatusChecks: NewStatusCheckAdapter(db),
		Transactor:   NewTransactor(client, transactions),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	adapters := map[string]indexer{
		collectionUsers:        s.Users,
		collectionJobs:         s.Jobs,
		collectionApplications: s.Applications,
		collectionConnections:  s.Connections,
		collectionPosts:        s.Posts,
		collectionComments:     s.Comments,
		collectionLikes:        s.Likes,
		collectionStatusChecks: s.StatusChecks,
	}
	var errs []error
	for name, a := range adapters {
		if err := a.EnsureIndexes(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to create indexes on %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// translate maps driver errors onto the port's sentinel errors.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return out.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return out.ErrDuplicate
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
