package out

import (
	"context"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// PostRepository defines the outbound port for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns posts newest first.
	List(ctx context.Context, skip, limit int) ([]*domain.Post, error)

	IncrementLikes(ctx context.Context, id string, delta int) error
	IncrementComments(ctx context.Context, id string, delta int) error

	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error)
}

type LikeRepository interface {
	Find(ctx context.Context, postID, userID string) (*domain.Like, error)
	// Create returns ErrDuplicate when the user already likes the post.
	Create(ctx context.Context, like *domain.Like) error
	// Delete reports whether a like was removed.
	Delete(ctx context.Context, postID, userID string) (bool, error)
}

type StatusCheckRepository interface {
	Create(ctx context.Context, check *domain.StatusCheck) error
	List(ctx context.Context) ([]*domain.StatusCheck, error)
}
