// Package bootstrap wires configuration, storage, services, controllers and
// routes into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/deniz/learnhub/internal/app/controllers"
	appRepos "github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/app/repositories/memory"
	"github.com/deniz/learnhub/internal/app/repositories/postgres"
	appRoutes "github.com/deniz/learnhub/internal/app/routes"
	appServices "github.com/deniz/learnhub/internal/app/services"
	"github.com/deniz/learnhub/internal/config"
	"github.com/deniz/learnhub/internal/db"
	appMiddleware "github.com/deniz/learnhub/internal/middleware"
	pkgAuth "github.com/deniz/learnhub/internal/pkg/auth"
	"github.com/deniz/learnhub/internal/pkg/email"
	"github.com/deniz/learnhub/internal/pkg/logger"
	"github.com/deniz/learnhub/internal/pkg/sessionstore"
	"github.com/deniz/learnhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CatalogService       appServices.CatalogService
	EnrollmentService    appServices.EnrollmentService
	MessageService       appServices.MessageService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	MessageController    *appControllers.MessageController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore builds the repository set for the configured storage driver and
// seeds it. The returned pool is nil for the in-memory store.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *pgxpool.Pool, error) {
	var repos *appRepos.Repositories
	var pool *pgxpool.Pool

	switch cfg.Database.Driver {
	case "postgres":
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		pool = database.Pool

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			lgr.Error().Err(err).Msg("Failed to ping database")
			pool.Close()
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := postgres.Migrate(ctx, pool); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			pool.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}

		repos = postgres.NewRepositories(pool)
	default:
		lgr.Info().Msg("Using in-memory store")
		repos = memory.NewRepositories()
	}

	if err := seed.CreateDefaultData(context.Background(), repos, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return repos, pool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	sessions, err := sessionstore.NewStore(cfg.Session.Dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize session store")
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(repos.Users, sessions, lgr)
	deps.CatalogService = appServices.NewCatalogService(repos.Courses, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(repos.Courses, repos.Enrollments, lgr)
	deps.MessageService = appServices.NewMessageService(repos.Messages, repos.Users, notifier, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CatalogService, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	return router
}
