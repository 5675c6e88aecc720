package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"toolsail-backend/internal/config"
	infraCache "toolsail-backend/internal/infrastructure/cache"
	"toolsail-backend/internal/infrastructure/database"
	"toolsail-backend/internal/infrastructure/email"
	"toolsail-backend/internal/infrastructure/ratelimit"
	"toolsail-backend/internal/infrastructure/storage"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/jwt"
	"toolsail-backend/pkg/logger"

	blogHandler "toolsail-backend/internal/domains/blog/handler"
	blogRepo "toolsail-backend/internal/domains/blog/repository"
	blogService "toolsail-backend/internal/domains/blog/service"
	categoryHandler "toolsail-backend/internal/domains/category/handler"
	categoryRepo "toolsail-backend/internal/domains/category/repository"
	categoryService "toolsail-backend/internal/domains/category/service"
	promotionHandler "toolsail-backend/internal/domains/promotion/handler"
	promotionRepo "toolsail-backend/internal/domains/promotion/repository"
	promotionService "toolsail-backend/internal/domains/promotion/service"
	"toolsail-backend/internal/domains/seed"
	submissionHandler "toolsail-backend/internal/domains/submission/handler"
	submissionRepo "toolsail-backend/internal/domains/submission/repository"
	submissionService "toolsail-backend/internal/domains/submission/service"
	toolHandler "toolsail-backend/internal/domains/tool/handler"
	toolRepo "toolsail-backend/internal/domains/tool/repository"
	toolService "toolsail-backend/internal/domains/tool/service"
	verificationRepo "toolsail-backend/internal/domains/verification/repository"
	verificationService "toolsail-backend/internal/domains/verification/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container là root của dependency graph, dùng chung cho API, worker và CLI
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient // nil khi không dùng Redis
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *asynq.Client // chỉ set khi NOTIFY_MODE=queue
	Sender     email.Sender
	Notifier   *email.Dispatcher
	Storage    *storage.MinIOStorage // nil khi MinIO chưa cấu hình

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CategoryRepo     categoryRepo.Repository
	ToolRepo         toolRepo.Repository
	SubmissionRepo   submissionRepo.Repository
	VerificationRepo verificationRepo.Repository
	BlogRepo         blogRepo.Repository
	PromotionRepo    promotionRepo.PromotionRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	CategoryService     categoryService.ServiceInterface
	ToolService         toolService.ServiceInterface
	SubmissionService   submissionService.ServiceInterface
	VerificationService verificationService.ServiceInterface
	BlogService         blogService.ServiceInterface
	PromotionService    promotionService.ServiceInterface
	Seeder              *seed.Seeder

	// ========================================
	// HANDLER LAYER
	// ========================================
	CategoryHandler        *categoryHandler.CategoryHandler
	ToolHandler            *toolHandler.ToolHandler
	SubmissionHandler      *submissionHandler.SubmissionHandler
	BlogHandler            *blogHandler.BlogHandler
	PromotionPublicHandler *promotionHandler.PublicHandler
	PromotionAdminHandler  *promotionHandler.AdminHandler
	SeedHandler            *seed.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer dựng graph theo thứ tự:
// config -> database -> cache -> notifier -> storage -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(cfg)
}

// New dựng container từ config đã load sẵn (CLI dùng để override flag)
func New(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	logger.Info("Initializing container", map[string]interface{}{"env": cfg.App.Environment})

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.initNotifier()
	c.initStorage()

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", nil)
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig(c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		applied, err := database.Migrate(ctx, db.Pool)
		if err != nil {
			return fmt.Errorf("auto migrate failed: %w", err)
		}
		logger.Info("Migrations applied", map[string]interface{}{"applied": applied})
	}
	return nil
}

// initCache: Redis lỗi không chặn khởi động, rơi về memory cache
func (c *Container) initCache() {
	needRedis := c.Config.Cache.Driver == "redis" ||
		c.Config.Notify.Mode == "queue" ||
		c.Config.Submission.CodeMaxPerHour > 0

	if needRedis {
		rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Connect(ctx)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable (non-critical)", map[string]interface{}{"error": err.Error()})
			_ = rc.Close()
		} else {
			c.Redis = rc
		}
	}

	if c.Config.Cache.Driver == "redis" && c.Redis != nil {
		c.Cache = infraCache.NewRedisCache(c.Redis.Client)
		return
	}
	if c.Config.Cache.Driver == "redis" {
		logger.Warn("Falling back to in-memory cache", nil)
	}
	c.Cache = infraCache.NewMemoryCache()
}

func (c *Container) initNotifier() {
	smtp := c.Config.SMTP
	c.Sender = email.NewSender(email.SMTPConfig{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
	})

	var mailer email.Mailer = email.NewDirectMailer(c.Sender)
	if c.Config.Notify.Mode == "queue" {
		c.Queue = asynq.NewClient(c.RedisConnOpt())
		mailer = email.NewQueueMailer(c.Queue)
	}
	c.Notifier = email.NewDispatcher(mailer)
}

func (c *Container) initStorage() {
	m := c.Config.MinIO
	if m.Endpoint == "" {
		logger.Warn("MinIO not configured, logo upload disabled", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := storage.NewMinIOStorage(ctx, storage.MinIOConfig{
		Endpoint:  m.Endpoint,
		AccessKey: m.AccessKey,
		SecretKey: m.SecretKey,
		Bucket:    m.Bucket,
		UseSSL:    m.UseSSL,
		PublicURL: m.PublicURL,
	})
	if err != nil {
		logger.Warn("MinIO unavailable, logo upload disabled", map[string]interface{}{"error": err.Error()})
		return
	}
	c.Storage = s
}

// RedisConnOpt dùng chung cho asynq client, server và scheduler
func (c *Container) RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// DOMAINS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ToolRepo = toolRepo.NewPostgresRepository(pool)
	c.SubmissionRepo = submissionRepo.NewPostgresRepository(pool)
	c.VerificationRepo = verificationRepo.NewPostgresRepository(pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool)
	c.PromotionRepo = promotionRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	// interface nil khi storage tắt, tránh typed-nil
	var objectStorage toolService.ObjectStorage
	if c.Storage != nil {
		objectStorage = c.Storage
	}

	var limiter verificationService.Limiter
	if c.Redis != nil {
		limiter = ratelimit.New(c.Redis.Client, "ratelimit:verify:", cfg.Submission.CodeMaxPerHour, time.Hour)
	}

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
	c.ToolService = toolService.NewToolService(
		c.ToolRepo,
		c.CategoryRepo,
		c.Cache,
		objectStorage,
		storage.NewImageProcessor(),
	)
	c.VerificationService = verificationService.NewVerificationService(
		c.VerificationRepo,
		c.Notifier,
		limiter,
		verificationService.Options{
			TTL:         cfg.Submission.CodeTTL,
			Cost:        cfg.Submission.VerificationCost,
			MaxAttempts: cfg.Submission.CodeMaxAttempts,
		},
	)
	c.SubmissionService = submissionService.NewSubmissionService(
		c.SubmissionRepo,
		c.CategoryRepo,
		c.VerificationService,
		c.Notifier,
		c.Cache,
		submissionService.Options{
			VerifyCode: cfg.Submission.VerifyCode,
			PublicURL:  cfg.App.PublicURL,
		},
	)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.Cache)
	c.PromotionService = promotionService.NewPromotionService(c.PromotionRepo, c.ToolRepo, c.Cache)
	c.Seeder = seed.NewSeeder(seed.NewPostgresStore(c.DB.Pool), c.Cache)
}

func (c *Container) initHandlers() {
	listTTL := c.Config.Cache.ListTTL

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ToolHandler = toolHandler.NewToolHandler(c.ToolService, c.Cache, listTTL)
	c.SubmissionHandler = submissionHandler.NewSubmissionHandler(c.SubmissionService, c.VerificationService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.Cache, listTTL)
	c.PromotionPublicHandler = promotionHandler.NewPublicHandler(c.PromotionService)
	c.PromotionAdminHandler = promotionHandler.NewAdminHandler(c.PromotionService)
	c.SeedHandler = seed.NewHandler(c.Seeder)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// HealthChecks trả các dependency cần ping cho /api/health
func (c *Container) HealthChecks() map[string]func(ctx context.Context) error {
	checks := map[string]func(ctx context.Context) error{}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	if c.Cache != nil {
		checks["cache"] = c.Cache.Ping
	}
	return checks
}

// Cleanup đóng các kết nối khi shutdown
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("Failed to close queue client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container cleanup completed", nil)
}
