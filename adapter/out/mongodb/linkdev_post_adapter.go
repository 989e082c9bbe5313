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

const (
	collectionPosts    = "posts"
	collectionComments = "post_comments"
	collectionLikes    = "post_likes"
)

// =============================================================================
// Posts
// =============================================================================

// PostAdapter implements out.PostRepository using MongoDB.
type PostAdapter struct {
	collection *mongo.Collection
}

var _ out.PostRepository = (*PostAdapter)(nil)

func NewPostAdapter(db *mongo.Database) *PostAdapter {
	return &PostAdapter{collection: db.Collection(collectionPosts)}
}

func (a *PostAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "author_id", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type postDocument struct {
	ID            string    `bson:"id"`
	AuthorID      string    `bson:"author_id"`
	Content       string    `bson:"content"`
	ImageURL      *string   `bson:"image_url"`
	LikesCount    int       `bson:"likes_count"`
	CommentsCount int       `bson:"comments_count"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (d *postDocument) toDomain() *domain.Post {
	return &domain.Post{
		ID:            d.ID,
		AuthorID:      d.AuthorID,
		Content:       d.Content,
		ImageURL:      d.ImageURL,
		LikesCount:    d.LikesCount,
		CommentsCount: d.CommentsCount,
		CreatedAt:     d.CreatedAt,
	}
}

func (a *PostAdapter) Create(ctx context.Context, post *domain.Post) error {
	_, err := a.collection.InsertOne(ctx, &postDocument{
		ID:            post.ID,
		AuthorID:      post.AuthorID,
		Content:       post.Content,
		ImageURL:      post.ImageURL,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		CreatedAt:     post.CreatedAt,
	})
	return translate(err, "insert post")
}

func (a *PostAdapter) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var doc postDocument
	if err := a.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return nil, translate(err, "get post")
	}
	return doc.toDomain(), nil
}

func (a *PostAdapter) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := a.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*domain.Post{}
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	return posts, cursor.Err()
}

func (a *PostAdapter) increment(ctx context.Context, id, field string, delta int) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{field: delta}})
	return translate(err, "increment "+field)
}

func (a *PostAdapter) IncrementLikes(ctx context.Context, id string, delta int) error {
	return a.increment(ctx, id, "likes_count", delta)
}

func (a *PostAdapter) IncrementComments(ctx context.Context, id string, delta int) error {
	return a.increment(ctx, id, "comments_count", delta)
}

func (a *PostAdapter) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return count(ctx, a.collection, bson.M{"author_id": authorID})
}

func (a *PostAdapter) Count(ctx context.Context) (int64, error) {
	return count(ctx, a.collection, bson.M{})
}

// =============================================================================
// Comments
// =============================================================================

// CommentAdapter implements out.CommentRepository using MongoDB.
type CommentAdapter struct {
	collection *mongo.Collection
}

var _ out.CommentRepository = (*CommentAdapter)(nil)

func NewCommentAdapter(db *mongo.Database) *CommentAdapter {
	return &CommentAdapter{collection: db.Collection(collectionComments)}
}

func (a *CommentAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type commentDocument struct {
	ID        string    `bson:"id"`
	PostID    string    `bson:"post_id"`
	AuthorID  string    `bson:"author_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

func (a *CommentAdapter) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := a.collection.InsertOne(ctx, &commentDocument{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
	return translate(err, "insert comment")
}

func (a *CommentAdapter) ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64(skip))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := a.collection.Find(ctx, bson.M{"post_id": postID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []*domain.Comment{}
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comments = append(comments, &domain.Comment{
			ID:        doc.ID,
			PostID:    doc.PostID,
			AuthorID:  doc.AuthorID,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
		})
	}
	return comments, cursor.Err()
}

// =============================================================================
// Likes
// =============================================================================

// LikeAdapter implements out.LikeRepository using MongoDB.
type LikeAdapter struct {
	collection *mongo.Collection
}

var _ out.LikeRepository = (*LikeAdapter)(nil)

func NewLikeAdapter(db *mongo.Database) *LikeAdapter {
	return &LikeAdapter{collection: db.Collection(collectionLikes)}
}

func (a *LikeAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type likeDocument struct {
	ID        string    `bson:"id"`
	PostID    string    `bson:"post_id"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (a *LikeAdapter) Find(ctx context.Context, postID, userID string) (*domain.Like, error) {
	var doc likeDocument
	if err := a.collection.FindOne(ctx, bson.M{"post_id": postID, "user_id": userID}).Decode(&doc); err != nil {
		return nil, translate(err, "get like")
	}
	return &domain.Like{ID: doc.ID, PostID: doc.PostID, UserID: doc.UserID, CreatedAt: doc.CreatedAt}, nil
}

func (a *LikeAdapter) Create(ctx context.Context, like *domain.Like) error {
	_, err := a.collection.InsertOne(ctx, &likeDocument{
		ID:        like.ID,
		PostID:    like.PostID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	})
	return translate(err, "insert like")
}

func (a *LikeAdapter) Delete(ctx context.Context, postID, userID string) (bool, error) {
	result, err := a.collection.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return result.DeletedCount > 0, nil
}
