// Package bootstrap wires configuration, storage and HTTP handling together.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/anmol/campushire/internal/app/controllers"
	appMigrations "github.com/anmol/campushire/internal/app/migrations"
	appRepos "github.com/anmol/campushire/internal/app/repositories"
	appRoutes "github.com/anmol/campushire/internal/app/routes"
	appServices "github.com/anmol/campushire/internal/app/services"
	"github.com/anmol/campushire/internal/config"
	"github.com/anmol/campushire/internal/db"
	appMiddleware "github.com/anmol/campushire/internal/middleware"
	pkgAuth "github.com/anmol/campushire/internal/pkg/auth"
	"github.com/anmol/campushire/internal/pkg/helpers"
	"github.com/anmol/campushire/internal/pkg/logger"
	"github.com/anmol/campushire/internal/pkg/observability"
	"github.com/anmol/campushire/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	QuizService          appServices.QuizService
	OnboardingService    appServices.OnboardingService
	JobService           appServices.JobService
	AuthController       *appControllers.AuthController
	QuizController       *appControllers.QuizController
	OnboardingController *appControllers.OnboardingController
	JobController        *appControllers.JobController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
	SentryFlush          func()
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.Sentry.Release)
	if err != nil {
		lgr.Warn().Err(err).Msg("Sentry initialization failed, continuing without it")
		flush = func() {}
	}
	deps.SentryFlush = flush

	deps.Repos = appRepos.NewRepositories(database)

	accessTokenExp := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour)
	refreshTokenExp := helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.QuizService = appServices.NewQuizService(
		deps.Repos.SubjectRepository,
		deps.Repos.QuizRepository,
		deps.Repos.QuestionRepository,
		lgr,
	)
	deps.OnboardingService = appServices.NewOnboardingService(deps.Repos.ProfileRepository, lgr)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository, deps.Repos.ProfileRepository, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.QuizController = appControllers.NewQuizController(deps.QuizService, lgr)
	deps.OnboardingController = appControllers.NewOnboardingController(deps.OnboardingService, lgr)
	deps.JobController = appControllers.NewJobController(deps.JobService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.QuizController,
		deps.OnboardingController,
		deps.JobController,
		deps.AuthMiddleware,
	)

	lgr.Info().Msg("Router configured")
	return router
}
