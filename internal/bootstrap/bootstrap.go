// Package bootstrap wires configuration, storage and services into a
// runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appCache "github.com/pradipta/siakad/internal/app/cache"
	appControllers "github.com/pradipta/siakad/internal/app/controllers"
	appMigrations "github.com/pradipta/siakad/internal/app/migrations"
	appRepos "github.com/pradipta/siakad/internal/app/repositories"
	appRoutes "github.com/pradipta/siakad/internal/app/routes"
	appServices "github.com/pradipta/siakad/internal/app/services"
	"github.com/pradipta/siakad/internal/config"
	"github.com/pradipta/siakad/internal/db"
	appMiddleware "github.com/pradipta/siakad/internal/middleware"
	pkgAuth "github.com/pradipta/siakad/internal/pkg/auth"
	"github.com/pradipta/siakad/internal/pkg/helpers"
	"github.com/pradipta/siakad/internal/pkg/logger"
	"github.com/pradipta/siakad/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	OfferingService     *appServices.OfferingService
	ComponentService    *appServices.ComponentService
	ScoreService        *appServices.ScoreService
	GradeService        *appServices.GradeService
	RecomputeService    *appServices.RecomputeService
	OfferingController  *appControllers.OfferingController
	ComponentController *appControllers.ComponentController
	ScoreController     *appControllers.ScoreController
	GradeController     *appControllers.GradeController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	RedisClient         *redis.Client
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed failure is not fatal for startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	scale, err := cfg.GradeScale()
	if err != nil {
		return nil, fmt.Errorf("failed to build grade scale: %w", err)
	}

	redisClient, err := db.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	deps.RedisClient = redisClient

	var gradeCache appServices.GradeCache
	var offeringGradeCache appServices.OfferingGradeCache
	if redisClient != nil {
		cacheTTL := helpers.ParseDuration(cfg.Redis.CacheTTL, 10*time.Minute)
		finalGradeCache := appCache.NewFinalGradeCache(redisClient, cacheTTL)
		gradeCache = finalGradeCache
		offeringGradeCache = finalGradeCache
		lgr.Info().Dur("ttl", cacheTTL).Msg("Final grade cache enabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.OfferingService = appServices.NewOfferingService(
		deps.Repos.OfferingRepository,
		deps.Repos.RPSRepository,
	)
	deps.ComponentService = appServices.NewComponentService(
		deps.Repos.ComponentRepository,
		deps.Repos.OfferingRepository,
		deps.Repos.RPSRepository,
		offeringGradeCache,
		lgr,
	)
	deps.ScoreService = appServices.NewScoreService(
		deps.Repos.ScoreRepository,
		deps.Repos.ComponentRepository,
		deps.Repos.EnrollmentRepository,
		scale,
		gradeCache,
		lgr,
	)
	deps.GradeService = appServices.NewGradeService(
		appServices.NewPGSnapshotRunner(database),
		deps.Repos.FinalGradeRepository,
		scale,
		gradeCache,
		lgr,
	)
	deps.RecomputeService = appServices.NewRecomputeService(
		deps.GradeService,
		deps.ComponentService,
		deps.Repos.EnrollmentRepository,
		cfg.Grading.BatchConcurrency,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.OfferingController = appControllers.NewOfferingController(deps.OfferingService, lgr)
	deps.ComponentController = appControllers.NewComponentController(deps.ComponentService, lgr)
	deps.ScoreController = appControllers.NewScoreController(deps.ScoreService, lgr)
	deps.GradeController = appControllers.NewGradeController(
		deps.GradeService,
		deps.RecomputeService,
		deps.OfferingService,
		lgr,
	)

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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.OfferingController,
		deps.ComponentController,
		deps.ScoreController,
		deps.GradeController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
