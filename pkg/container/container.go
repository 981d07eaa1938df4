package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/config"
	authorHandler "docmanager-backend/internal/domains/author/handler"
	authorRepo "docmanager-backend/internal/domains/author/repository"
	authorService "docmanager-backend/internal/domains/author/service"
	cascadeJob "docmanager-backend/internal/domains/cascade/job"
	cascadeService "docmanager-backend/internal/domains/cascade/service"
	documentHandler "docmanager-backend/internal/domains/document/handler"
	documentRepo "docmanager-backend/internal/domains/document/repository"
	documentService "docmanager-backend/internal/domains/document/service"
	infraCache "docmanager-backend/internal/infrastructure/cache"
	"docmanager-backend/internal/infrastructure/database"
	"docmanager-backend/internal/infrastructure/memstore"
	"docmanager-backend/internal/infrastructure/queue"
	"docmanager-backend/pkg/cache"
	"docmanager-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Dùng chung cho cmd/api và cmd/worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil khi STORE_DRIVER=memory
	Store       *memstore.Store      // nil khi STORE_DRIVER=postgres
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager // nil khi JWT_SECRET rỗng

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo   authorRepo.RepositoryInterface
	DocumentRepo documentRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService   authorService.ServiceInterface
	DocumentService documentService.ServiceInterface
	Producer        cascadeService.ProducerInterface

	// ========================================
	// HANDLER LAYER (HTTP + QUEUE)
	// ========================================
	AuthorHandler   *authorHandler.AuthorHandler
	DocumentHandler *documentHandler.DocumentHandler
	TaskHandlers    queue.Handlers
}

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB hoặc memstore, Redis, asynq client)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("store", cfg.Database.Driver).
		Str("failure_policy", cfg.Queue.FailurePolicy).
		Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3-5: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	if err := c.initDomains(); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().Msg("✅ DI Container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// Redis luôn cần cho queue; cache chỉ bật với postgres store
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn().Msg("⚠️  Using in-memory store, data is lost on restart")
		c.Store = memstore.New()
		c.Cache = cache.Noop{}

	default:
		log.Info().Msg("🗄️  Connecting to PostgreSQL...")
		db := database.NewPostgresDB(cfg.Database.Pool())
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, db.Pool); err != nil {
				return fmt.Errorf("failed to migrate schema: %w", err)
			}
		}
		log.Info().Msg("✅ Database connected")

		if err := c.Redis.Connect(ctx); err != nil {
			// Cache là optional: thiếu Redis thì đọc thẳng từ DB
			log.Warn().Err(err).Msg("⚠️  Redis unavailable, caching disabled")
			c.Cache = cache.Noop{}
		} else {
			c.Cache = infraCache.NewRedisCache(c.Redis.Client)
			log.Info().Msg("✅ Redis cache connected")
		}
	}

	c.AsynqClient = queue.NewClient(cfg.Redis)

	if cfg.JWT.Secret != "" {
		c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
		log.Info().Msg("🔐 JWT auth enabled for queue routes")
	}

	return nil
}

func (c *Container) initDomains() error {
	// Repositories
	if c.Store != nil {
		c.AuthorRepo = c.Store.Authors()
		c.DocumentRepo = c.Store.Documents()
	} else {
		c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
		c.DocumentRepo = documentRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	}

	// Services
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.DocumentRepo)
	c.DocumentService = documentService.NewDocumentService(c.DocumentRepo, c.AuthorRepo)
	c.Producer = cascadeService.NewProducer(c.AsynqClient, c.AuthorService, c.DocumentService, c.Config.Queue)

	// HTTP handlers
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Producer)
	c.DocumentHandler = documentHandler.NewDocumentHandler(c.DocumentService, c.Producer)

	// Queue consumers
	policy, err := cascadeJob.NewFailurePolicy(c.Config.Queue.FailurePolicy)
	if err != nil {
		return err
	}
	c.TaskHandlers = queue.Handlers{
		c.Config.Queue.AuthorTaskType():   cascadeJob.NewAuthorDeleteHandler(c.DocumentService, c.AuthorService, policy),
		c.Config.Queue.DocumentTaskType(): cascadeJob.NewDocumentDeleteHandler(c.DocumentService, policy),
	}

	return nil
}

// HealthCheck kiểm tra store và broker; dùng cho /health
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "ok", "redis": "ok", "cache": "ok"}

	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = fmt.Sprintf("error: %v", err)
		}
	} else {
		status["database"] = "memory"
	}

	if err := c.Redis.HealthCheck(ctx); err != nil {
		status["redis"] = fmt.Sprintf("error: %v", err)
	}

	// Noop cache luôn ok
	if err := c.Cache.Ping(ctx); err != nil {
		status["cache"] = fmt.Sprintf("error: %v", err)
	}

	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
