package in

import (
	"context"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// ConnectionService defines the inbound port for the connection graph.
type ConnectionService interface {
	SendRequest(ctx context.Context, caller *domain.User, req *ConnectionRequestInput) (*domain.ConnectionRequest, error)
	ListIncoming(ctx context.Context, caller *domain.User) ([]*domain.ConnectionRequest, error)
	Respond(ctx context.Context, caller *domain.User, connectionID string, accept bool) (*domain.ConnectionRequest, error)
	ListConnections(ctx context.Context, caller *domain.User) ([]*domain.User, error)
}

// PostService defines the inbound port for the feed.
type PostService interface {
	CreatePost(ctx context.Context, caller *domain.User, req *CreatePostRequest) (*domain.Post, error)
	ListPosts(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	ToggleLike(ctx context.Context, caller *domain.User, postID string) (*LikeResponse, error)
	AddComment(ctx context.Context, caller *domain.User, postID string, req *CreateCommentRequest) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error)
}

// DashboardService defines the inbound port for aggregate counters.
type DashboardService interface {
	DashboardStats(ctx context.Context, caller *domain.User) (*domain.DashboardStats, error)
	AdminStats(ctx context.Context, caller *domain.User) (*domain.AdminStats, error)
}

// StatusService defines the inbound port for the legacy status-check records.
type StatusService interface {
	Record(ctx context.Context, req *StatusCheckRequest) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]*domain.StatusCheck, error)
}

type ConnectionRequestInput struct {
	ReceiverID string  `json:"receiver_id" validate:"required,max=64"`
	Message    *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,max=5000"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// LikeResponse reports the state after a like toggle.
type LikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required,max=200"`
}
