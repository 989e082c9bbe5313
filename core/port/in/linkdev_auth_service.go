package in

import (
	"context"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// AuthService defines the inbound port for account access.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	// Authenticate resolves a bearer token to the caller's profile.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UserService defines the inbound port for profiles.
type UserService interface {
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	SearchUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error)
}

// =============================================================================
// Request/Response Types
// =============================================================================

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=job_seeker recruiter admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName       *string          `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName        *string          `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Headline        *string          `json:"headline,omitempty" validate:"omitempty,max=220"`
	Summary         *string          `json:"summary,omitempty" validate:"omitempty,max=5000"`
	Location        *string          `json:"location,omitempty" validate:"omitempty,max=200"`
	Industry        *string          `json:"industry,omitempty" validate:"omitempty,max=200"`
	ExperienceYears *int             `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=80"`
	Skills          []string         `json:"skills,omitempty" validate:"omitempty,dive,max=100"`
	Education       []map[string]any `json:"education,omitempty"`
	Experience      []map[string]any `json:"experience,omitempty"`
}

// ToDomain converts the request into a partial update.
func (r *UpdateProfileRequest) ToDomain() *domain.UserUpdate {
	return &domain.UserUpdate{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Headline:        r.Headline,
		Summary:         r.Summary,
		Location:        r.Location,
		Industry:        r.Industry,
		ExperienceYears: r.ExperienceYears,
		Skills:          r.Skills,
		Education:       r.Education,
		Experience:      r.Experience,
	}
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
