// Package post implements the feed: posts, likes and comments.
package post

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/core/service/common"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/google/uuid"
)

const (
	msgLiked   = "Post liked"
	msgUnliked = "Post unliked"
)

type Service struct {
	posts    out.PostRepository
	comments out.CommentRepository
	likes    out.LikeRepository
	sync     *common.CounterSync
	metrics  *metrics.Metrics
	now      func() time.Time
}

var _ in.PostService = (*Service)(nil)

func NewService(
	posts out.PostRepository,
	comments out.CommentRepository,
	likes out.LikeRepository,
	tx out.Transactor,
	m *metrics.Metrics,
) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		likes:    likes,
		sync:     common.NewCounterSync(tx, m),
		metrics:  m,
		now:      time.Now,
	}
}

func (s *Service) CreatePost(ctx context.Context, caller *domain.User, req *in.CreatePostRequest) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  caller.ID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedAt: s.now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperr.DatabaseError("create post", err)
	}
	s.metrics.IncrementPostsCreated()
	return post, nil
}

// ListPosts returns the feed newest first.
func (s *Service) ListPosts(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	skip, limit = common.NormalizePage(skip, limit)
	posts, err := s.posts.List(ctx, skip, limit)
	if err != nil {
		return nil, apperr.DatabaseError("list posts", err)
	}
	return posts, nil
}

// ToggleLike likes the post, or unlikes it when caller already does.
func (s *Service) ToggleLike(ctx context.Context, caller *domain.User, postID string) (*in.LikeResponse, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	_, err := s.likes.Find(ctx, postID, caller.ID)
	switch {
	case err == nil:
		return s.unlike(ctx, caller, postID)
	case !common.IsNotFound(err):
		return nil, apperr.DatabaseError("find like", err)
	}

	like := &domain.Like{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    caller.ID,
		CreatedAt: s.now().UTC(),
	}
	err = s.sync.Run(ctx, "like",
		func(ctx context.Context) error { return s.likes.Create(ctx, like) },
		func(ctx context.Context) error { return s.posts.IncrementLikes(ctx, postID, 1) },
	)
	if err != nil {
		if common.IsDuplicate(err) {
			// A concurrent request liked it first; the toggle turns it off.
			return s.unlike(ctx, caller, postID)
		}
		return nil, apperr.DatabaseError("like post", err)
	}

	s.metrics.IncrementLikeToggles(true)
	return &in.LikeResponse{Message: msgLiked, Liked: true}, nil
}

func (s *Service) unlike(ctx context.Context, caller *domain.User, postID string) (*in.LikeResponse, error) {
	removed := false
	err := s.sync.Run(ctx, "unlike",
		func(ctx context.Context) error {
			var err error
			removed, err = s.likes.Delete(ctx, postID, caller.ID)
			return err
		},
		func(ctx context.Context) error {
			if !removed {
				return nil
			}
			return s.posts.IncrementLikes(ctx, postID, -1)
		},
	)
	if err != nil {
		return nil, apperr.DatabaseError("unlike post", err)
	}

	s.metrics.IncrementLikeToggles(false)
	return &in.LikeResponse{Message: msgUnliked, Liked: false}, nil
}

// AddComment stores a comment and bumps the post's comments_count.
func (s *Service) AddComment(ctx context.Context, caller *domain.User, postID string, req *in.CreateCommentRequest) (*domain.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  caller.ID,
		Content:   req.Content,
		CreatedAt: s.now().UTC(),
	}
	err := s.sync.Run(ctx, "comment",
		func(ctx context.Context) error { return s.comments.Create(ctx, comment) },
		func(ctx context.Context) error { return s.posts.IncrementComments(ctx, postID, 1) },
	)
	if err != nil {
		return nil, apperr.DatabaseError("create comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *Service) ListComments(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	skip, limit = common.NormalizePage(skip, limit)
	comments, err := s.comments.ListByPost(ctx, postID, skip, limit)
	if err != nil {
		return nil, apperr.DatabaseError("list comments", err)
	}
	return comments, nil
}

func (s *Service) requirePost(ctx context.Context, postID string) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if common.IsNotFound(err) {
			return apperr.NotFound("Post")
		}
		return apperr.DatabaseError("get post", err)
	}
	return nil
}
