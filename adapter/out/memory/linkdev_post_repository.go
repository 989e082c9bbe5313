package memory

import (
	"context"
	"slices"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"
)

type (
	postRow        = domain.Post
	commentRow     = domain.Comment
	likeRow        = domain.Like
	statusCheckRow = domain.StatusCheck
)

type PostRepository struct {
	s *Store
}

var _ out.PostRepository = (*PostRepository)(nil)

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	return &c
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts.get(post.ID); ok {
		return out.ErrDuplicate
	}
	r.s.posts.insert(post.ID, clonePost(post))
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.posts.get(id)
	if !ok {
		return nil, out.ErrNotFound
	}
	return clonePost(row), nil
}

func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]*domain.Post, 0, r.s.posts.len())
	r.s.posts.each(func(row *postRow) bool {
		posts = append(posts, clonePost(row))
		return true
	})
	// Newest first; later inserts win ties.
	slices.Reverse(posts)
	slices.SortStableFunc(posts, func(a, b *domain.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page(posts, skip, limit), nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.posts.get(id); ok {
		row.LikesCount += delta
	}
	return nil
}

func (r *PostRepository) IncrementComments(ctx context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.posts.get(id); ok {
		row.CommentsCount += delta
	}
	return nil
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	r.s.posts.each(func(row *postRow) bool {
		if row.AuthorID == authorID {
			n++
		}
		return true
	})
	return n, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(r.s.posts.len()), nil
}

type CommentRepository struct {
	s *Store
}

var _ out.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments.get(comment.ID); ok {
		return out.ErrDuplicate
	}
	c := *comment
	r.s.comments.insert(comment.ID, &c)
	return nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []*domain.Comment{}
	r.s.comments.each(func(row *commentRow) bool {
		if row.PostID == postID {
			c := *row
			comments = append(comments, &c)
		}
		return true
	})
	slices.SortStableFunc(comments, func(a, b *domain.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return page(comments, skip, limit), nil
}

type LikeRepository struct {
	s *Store
}

var _ out.LikeRepository = (*LikeRepository)(nil)

func (r *LikeRepository) find(postID, userID string) *likeRow {
	var found *likeRow
	r.s.likes.each(func(row *likeRow) bool {
		if row.PostID == postID && row.UserID == userID {
			found = row
			return false
		}
		return true
	})
	return found
}

func (r *LikeRepository) Find(ctx context.Context, postID, userID string) (*domain.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row := r.find(postID, userID)
	if row == nil {
		return nil, out.ErrNotFound
	}
	c := *row
	return &c, nil
}

func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.find(like.PostID, like.UserID) != nil {
		return out.ErrDuplicate
	}
	c := *like
	r.s.likes.insert(like.ID, &c)
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := r.find(postID, userID)
	if row == nil {
		return false, nil
	}
	return r.s.likes.remove(row.ID), nil
}

type StatusCheckRepository struct {
	s *Store
}

var _ out.StatusCheckRepository = (*StatusCheckRepository)(nil)

func (r *StatusCheckRepository) Create(ctx context.Context, check *domain.StatusCheck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *check
	r.s.statusChecks.insert(check.ID, &c)
	return nil
}

func (r *StatusCheckRepository) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	checks := []*domain.StatusCheck{}
	r.s.statusChecks.each(func(row *statusCheckRow) bool {
		c := *row
		checks = append(checks, &c)
		return true
	})
	return checks, nil
}
