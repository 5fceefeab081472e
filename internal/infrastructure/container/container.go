package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/kindredapp/kindred-backend/internal/config"
	"github.com/kindredapp/kindred-backend/internal/delivery/http"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/handler"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/middleware"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/database"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/gemini"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/server"
	"github.com/kindredapp/kindred-backend/internal/metrics"
	"github.com/kindredapp/kindred-backend/internal/notify"
	"github.com/kindredapp/kindred-backend/internal/repository/postgres"
	"github.com/kindredapp/kindred-backend/internal/usecase/auth"
	"github.com/kindredapp/kindred-backend/internal/usecase/connection"
	"github.com/kindredapp/kindred-backend/internal/usecase/interest"
	"github.com/kindredapp/kindred-backend/internal/usecase/match"
	"github.com/kindredapp/kindred-backend/internal/usecase/message"
	"github.com/kindredapp/kindred-backend/internal/usecase/profile"
)

const (
	migrationsDir          = "migrations"
	sessionCleanupInterval = time.Hour
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client

	stopCleanup chan struct{}
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis. Event delivery degrades to no-ops without it.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		fmt.Printf("Warning: failed to initialize redis, events disabled: %v\n", err)
		redisClient = nil
	}
	publisher := notify.NewPublisher(redisClient)

	// Initialize Gemini client
	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		fmt.Printf("Warning: failed to initialize Gemini client: %v\n", err)
		// Don't fail, just continue without AI features
	}

	metrics.Register()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	userInterestRepo := postgres.NewUserInterestRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		cfg.JWT.Secret,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		locationRepo,
	)

	interestUseCase := interest.NewInterestUseCase(
		interestRepo,
		userInterestRepo,
	)

	matchUseCase := match.NewMatchUseCase(
		profileRepo,
		locationRepo,
		userInterestRepo,
		cfg.Match.QueryTimeout,
	)

	connectionUseCase := connection.NewConnectionUseCase(
		connectionRepo,
		profileRepo,
		userInterestRepo,
		publisher,
		geminiClient,
	)

	messageUseCase := message.NewMessageUseCase(
		messageRepo,
		connectionRepo,
		publisher,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	interestHandler := handler.NewInterestHandler(interestUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase, match.Params{
		MaxDistanceKm: cfg.Match.MaxDistanceKm,
		Limit:         cfg.Match.Limit,
	})
	connectionHandler := handler.NewConnectionHandler(connectionUseCase)
	messageHandler := handler.NewMessageHandler(messageUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		interestHandler,
		matchHandler,
		connectionHandler,
		messageHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	c := &Container{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Server:      srv,
		Gemini:      geminiClient,
		stopCleanup: make(chan struct{}),
	}
	c.startSessionCleanup(authUseCase)

	return c, nil
}

// startSessionCleanup purges expired sessions at startup and then every
// sessionCleanupInterval until the container is closed.
func (c *Container) startSessionCleanup(authUseCase *auth.AuthUseCase) {
	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			deleted, err := authUseCase.PurgeExpiredSessions(ctx)
			cancel()
			if err != nil {
				fmt.Printf("Warning: session cleanup failed: %v\n", err)
			} else if deleted > 0 {
				fmt.Printf("Session cleanup removed %d expired sessions\n", deleted)
			}

			select {
			case <-ticker.C:
			case <-c.stopCleanup:
				return
			}
		}
	}()
}

// Close closes all connections
func (c *Container) Close() error {
	if c.stopCleanup != nil {
		close(c.stopCleanup)
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
