// Package auth implements registration, login and bearer-token authentication.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/core/service/common"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/logger"
	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/google/uuid"
)

const (
	TokenType = "bearer"

	msgBadCredentials = "Incorrect email or password"
	msgEmailTaken     = "Email already registered"
)

type Service struct {
	users   out.UserRepository
	hasher  *PasswordHasher
	tokens  *TokenService
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ in.AuthService = (*Service)(nil)

func NewService(users out.UserRepository, hasher *PasswordHasher, tokens *TokenService, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: m,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, req *in.RegisterRequest) (*in.TokenResponse, error) {
	role := domain.RoleJobSeeker
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok {
			return nil, apperr.InvalidInput("role", "must be one of job_seeker, recruiter, admin")
		}
		role = r
	}

	email := normalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict(msgEmailTaken)
	} else if !common.IsNotFound(err) {
		return nil, apperr.DatabaseError("find user by email", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Skills:       []string{},
		Education:    []map[string]any{},
		Experience:   []map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if common.IsDuplicate(err) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, apperr.DatabaseError("create user", err)
	}

	s.metrics.IncrementUsersRegistered()
	logger.WithContext(ctx).WithField("user_id", user.ID).WithField("role", string(role)).Info("user registered")

	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *Service) Login(ctx context.Context, req *in.LoginRequest) (*in.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !common.IsNotFound(err) {
			return nil, apperr.DatabaseError("find user by email", err)
		}
		s.metrics.ObserveLogin(false)
		return nil, apperr.Unauthorized(msgBadCredentials)
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.metrics.ObserveLogin(false)
		return nil, apperr.Unauthorized(msgBadCredentials)
	}

	s.metrics.ObserveLogin(true)
	return s.issue(user)
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, apperr.InvalidToken("Token has expired")
		}
		return nil, apperr.Unauthorized("")
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.Unauthorized("")
		}
		return nil, apperr.DatabaseError("get user", err)
	}
	return user, nil
}

func (s *Service) issue(user *domain.User) (*in.TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}
	return &in.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		User:        user,
	}, nil
}
