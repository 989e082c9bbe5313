package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/MASTER-2222/linkedin/adapter/out/memory"
	"github.com/MASTER-2222/linkedin/adapter/out/mongodb"
	"github.com/MASTER-2222/linkedin/config"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/core/service/auth"
	"github.com/MASTER-2222/linkedin/core/service/connection"
	"github.com/MASTER-2222/linkedin/core/service/dashboard"
	"github.com/MASTER-2222/linkedin/core/service/job"
	"github.com/MASTER-2222/linkedin/core/service/post"
	"github.com/MASTER-2222/linkedin/core/service/status"
	"github.com/MASTER-2222/linkedin/core/service/user"
	"github.com/MASTER-2222/linkedin/pkg/logger"
	"github.com/MASTER-2222/linkedin/pkg/metrics"
)

// StoreKind selects the persistence backend.
type StoreKind string

const (
	StoreMongo  StoreKind = "mongo"
	StoreMemory StoreKind = "memory"
)

// ParseStoreKind validates a --store flag value.
func ParseStoreKind(s string) (StoreKind, error) {
	switch k := StoreKind(s); k {
	case StoreMongo, StoreMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown store %q (want mongo or memory)", s)
	}
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// repositories is the set of outbound ports every service is built from.
type repositories struct {
	users        out.UserRepository
	jobs         out.JobRepository
	applications out.ApplicationRepository
	connections  out.ConnectionRepository
	posts        out.PostRepository
	comments     out.CommentRepository
	likes        out.LikeRepository
	statusChecks out.StatusCheckRepository
	tx           out.Transactor
}

type Dependencies struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Store   Pinger

	// Mongo is nil when running on the in-memory store.
	Mongo *mongodb.Store

	// Services
	AuthService       *auth.Service
	UserService       *user.Service
	JobService        *job.Service
	ConnectionService *connection.Service
	PostService       *post.Service
	DashboardService  *dashboard.Service
	StatusService     *status.Service
}

// NewDependencies connects the selected store and builds every service on it.
// The returned cleanup closes the store connection.
func NewDependencies(ctx context.Context, cfg *config.Config, kind StoreKind) (*Dependencies, func(), error) {
	switch kind {
	case StoreMemory:
		logger.Warn("Using the in-memory store; data is lost on exit")
		deps := NewMemoryDependencies(cfg, memory.NewStore())
		return deps, func() {}, nil

	case StoreMongo, "":
		client, err := mongodb.NewClient(ctx, cfg.MongoURL)
		if err != nil {
			return nil, nil, err
		}
		store := mongodb.NewStore(client, cfg.MongoDBName, cfg.MongoTransactions)
		logger.Info("MongoDB connected: database=%s transactions=%v", cfg.MongoDBName, cfg.MongoTransactions)

		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, nil, err
		}

		deps := newDependencies(cfg, store, repositories{
			users:        store.Users,
			jobs:         store.Jobs,
			applications: store.Applications,
			connections:  store.Connections,
			posts:        store.Posts,
			comments:     store.Comments,
			likes:        store.Likes,
			statusChecks: store.StatusChecks,
			tx:           store.Transactor,
		})
		deps.Mongo = store

		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := store.Close(ctx); err != nil {
				logger.WithError(err).Error("Failed to disconnect MongoDB")
				return
			}
			logger.Info("MongoDB connection closed")
		}
		return deps, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}

// NewMemoryDependencies builds the services on an in-memory store.
func NewMemoryDependencies(cfg *config.Config, store *memory.Store) *Dependencies {
	return newDependencies(cfg, store, repositories{
		users:        store.Users(),
		jobs:         store.Jobs(),
		applications: store.Applications(),
		connections:  store.Connections(),
		posts:        store.Posts(),
		comments:     store.Comments(),
		likes:        store.Likes(),
		statusChecks: store.StatusChecks(),
		tx:           store.Transactor(),
	})
}

func newDependencies(cfg *config.Config, store Pinger, r repositories) *Dependencies {
	m := metrics.New()

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())

	return &Dependencies{
		Config:      cfg,
		Metrics:     m,
		Store:       store,
		AuthService: auth.NewService(r.users, hasher, tokens, m),
		UserService: user.NewService(r.users),
		JobService:  job.NewService(r.jobs, r.applications, r.tx, m),
		ConnectionService: connection.NewService(r.connections, r.users, r.tx, m, connection.Config{
			AllowReRequestAfterDecline: cfg.AllowReRequestAfterDecline,
		}),
		PostService:      post.NewService(r.posts, r.comments, r.likes, r.tx, m),
		DashboardService: dashboard.NewService(r.users, r.jobs, r.applications, r.connections, r.posts),
		StatusService:    status.NewService(r.statusChecks),
	}
}
