package container

import (
	"context"
	"fmt"
	"time"

	"bookreview-backend/internal/config"
	infraCache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/logger"

	// User domain imports
	"bookreview-backend/internal/domains/user"
	userHandler "bookreview-backend/internal/domains/user/handler"
	userRepo "bookreview-backend/internal/domains/user/repository"
	userService "bookreview-backend/internal/domains/user/service"

	// Book domain imports
	bookHandler "bookreview-backend/internal/domains/book/handler"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	bookService "bookreview-backend/internal/domains/book/service"

	// Review domain imports
	reviewHandler "bookreview-backend/internal/domains/review/handler"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	reviewService "bookreview-backend/internal/domains/review/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo   user.Repository
	BookRepo   bookRepo.RepositoryInterface
	ReviewRepo reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService   user.Service
	ReviewService reviewService.ServiceInterface
	BookService   bookService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.Handler
	ReviewHandler *reviewHandler.ReviewHandler

	redis *infraCache.RedisCache
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache, JWT)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Component("container")
	log.Info().Str("environment", cfg.App.Environment).Msg("initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.App.AutoMigrate {
		applied, err := database.Migrate(ctx, db.Pool)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().Int("applied", applied).Msg("schema up to date")
	}

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	c.redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		// Redis failure không critical - cache miss thì đọc DB
		log.Warn().Err(err).Msg("redis connection failed (non-critical)")
	}
	c.Cache = c.redis

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// ========================================
	// STEP 3-5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initRepositories - repositories phụ thuộc DB và Cache
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(pool)
}

// initServices - book service cần review service để compose book detail
func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Cache,
		c.JWTManager,
		userService.Options{
			BcryptCost:      c.Config.Auth.BcryptCost,
			MaxFailedLogins: c.Config.Auth.MaxFailedLogins,
			LockoutWindow:   c.Config.Auth.LockoutWindow,
		},
	)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo)
	c.BookService = bookService.NewService(c.BookRepo, c.ReviewService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log := logger.Component("container")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		} else {
			log.Info().Msg("redis connections closed")
		}
	}
}
