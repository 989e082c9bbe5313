package bootstrap

import (
	"strings"

	"github.com/MASTER-2222/linkedin/adapter/in/http"
	"github.com/MASTER-2222/linkedin/infra/middleware"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// InitLogger configures the default logger from the config.
func InitLogger(level string, pretty bool) {
	logger.Init(logger.Config{
		Level:   logger.ParseLevel(level),
		Service: "linkdev-api",
		Pretty:  pretty,
	})
}

// NewAPI builds the Fiber app and registers every route on deps.
func NewAPI(deps *Dependencies) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:               "linkdev",
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		StrictRouting:         false,
		CaseSensitive:         true,
		Immutable:             true,

		// go-json: faster drop-in for encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit:    1 * 1024 * 1024,
		ServerHeader: "",
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())         // 1. Panic recovery
	app.Use(middleware.RequestID())       // 2. Request ID
	app.Use(middleware.SecurityHeaders()) // 3. Security headers
	app.Use(middleware.RequestLogger())   // 4. Request logging
	app.Use(middleware.Metrics(deps.Metrics))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Credentials cannot be combined with a wildcard origin.
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowOrigins != "*",
		MaxAge:           86400,
	}))

	// Operational endpoints (no auth required)
	http.NewHealthHandler(deps.Store).Register(app)
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group(cfg.APIPrefix)
	api.Use(middleware.ValidateContentType())

	requireAuth := middleware.Authenticate(deps.AuthService)

	http.NewStatusHandler(deps.StatusService).Register(api)
	http.NewAuthHandler(deps.AuthService).Register(api)
	http.NewUserHandler(deps.UserService).Register(api, requireAuth)
	http.NewJobHandler(deps.JobService).Register(api, requireAuth)
	http.NewConnectionHandler(deps.ConnectionService).Register(api, requireAuth)
	http.NewPostHandler(deps.PostService).Register(api, requireAuth)
	http.NewDashboardHandler(deps.DashboardService).Register(api, requireAuth)

	logger.Info("API routes registered under %s", cfg.APIPrefix)
	return app
}
