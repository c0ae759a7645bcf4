package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samueldk12/trainer/internal/api"
	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/config"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/logging"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/repository/memory"
	"github.com/samueldk12/trainer/internal/repository/mongo"
	"github.com/samueldk12/trainer/internal/service"
	"github.com/samueldk12/trainer/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type repositories struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	sessions  repository.SessionRepository
	close     func()
}

// setup loads the configuration and applies the logging settings.
func setup() (config.Config, io.Closer, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, logging.Setup(cfg.Log), nil
}

func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:     store.Users,
			exercises: store.Exercises,
			workouts:  store.Workouts,
			sessions:  store.Sessions,
			close:     func() {},
		}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Name)
	log.WithField("database", cfg.Name).Info("database connection established")

	go func() { // Run index creation in the background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.WithError(err).Error("index creation failed")
			return
		}
		log.Debug("index creation process completed")
	}()

	return &repositories{
		users:     mongo.NewMongoUserRepository(appDB),
		exercises: mongo.NewMongoExerciseRepository(appDB),
		workouts:  mongo.NewMongoWorkoutRepository(appDB),
		sessions:  mongo.NewMongoSessionRepository(appDB),
		close: func() {
			log.Info("disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.WithError(err).Error("failed to disconnect MongoDB")
			}
		},
	}, nil
}

func newFileStorage(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error) {
	if !cfg.Enabled() {
		log.Info("s3 bucket not configured, exercise image uploads are disabled")
		return storage.NewDisabledStorage(), nil
	}
	return storage.NewS3Storage(ctx, cfg)
}

// resolveIdentity returns the identity every request acts as, or nil in jwt mode.
func resolveIdentity(ctx context.Context, cfg config.AuthConfig, users repository.UserRepository) (*domain.Identity, error) {
	if cfg.Mode != config.AuthModeProvisional {
		return nil, nil
	}
	identity, err := service.ProvisionalIdentity(ctx, users, cfg.Provisional)
	if err != nil {
		return nil, err
	}
	log.WithField("userId", identity.UserID).Info("requests act as the provisional user")
	return &identity, nil
}

func runServe(ctx context.Context) error {
	cfg, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info("starting workout tracker server...")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(cfg.Database)
	if err != nil {
		return err
	}
	defer repos.close()

	fileStorage, err := newFileStorage(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 storage: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager(metrics.Namespace, metrics.Subsystem, promRegistry)

	exerciseService := service.NewExerciseService(repos.exercises, repos.workouts, fileStorage, metricsManager, cfg.S3.UploadExpiry)
	workoutService := service.NewWorkoutService(repos.workouts, exerciseService, composer.New(), metricsManager)
	services := api.Services{
		Exercises:  exerciseService,
		Workouts:   workoutService,
		Sessions:   service.NewSessionService(repos.sessions, workoutService, metricsManager, nil),
		Health:     service.NewHealthService(repos.users, repos.exercises, repos.workouts),
		Seed:       service.NewSeedService(repos.exercises, repos.workouts),
		EnableSeed: cfg.Server.EnableSeed,
		Metrics:    metricsManager,
		Registry:   promRegistry,
	}
	if cfg.Auth.Mode == config.AuthModeJWT {
		services.Auth = service.NewAuthService(repos.users, cfg.Auth.JWT.Secret, cfg.Auth.JWT.Expiration)
	}
	if services.Provisional, err = resolveIdentity(ctx, cfg.Auth, repos.users); err != nil {
		return err
	}

	gin.SetMode(cfg.Server.GinMode)
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(services),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exiting")
	return nil
}

func runSeed(ctx context.Context, out io.Writer) error {
	cfg, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	repos, err := openRepositories(cfg.Database)
	if err != nil {
		return err
	}
	defer repos.close()

	identity, err := service.ProvisionalIdentity(ctx, repos.users, cfg.Auth.Provisional)
	if err != nil {
		return err
	}
	result, err := service.NewSeedService(repos.exercises, repos.workouts).Seed(ctx, identity)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
