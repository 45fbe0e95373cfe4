// container.go
package main

import (
	"context"
	"fmt"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/luminahr/portal/pkg/apply/applyapi"
	"github.com/luminahr/portal/pkg/apply/applyinfra"
	"github.com/luminahr/portal/pkg/apply/applysrv"
	"github.com/luminahr/portal/pkg/config"
	"github.com/luminahr/portal/pkg/cvparse"
	"github.com/luminahr/portal/pkg/fsx"
	"github.com/luminahr/portal/pkg/fsx/fsxlocal"
	"github.com/luminahr/portal/pkg/fsx/fsxs3"
	"github.com/luminahr/portal/pkg/iam"
	"github.com/luminahr/portal/pkg/logx"
	"github.com/luminahr/portal/pkg/schedule/scheduleapi"
	"github.com/luminahr/portal/pkg/schedule/scheduleinfra"
	"github.com/luminahr/portal/pkg/schedule/schedulesrv"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Services
	TokenService    iam.TokenService
	DraftService    *applysrv.DraftService
	ScheduleService *schedulesrv.ScheduleService
	CVParser        cvparse.Parser

	// API Handlers
	DraftHandlers    *applyapi.DraftHandlers
	ScheduleHandlers *scheduleapi.ScheduleHandlers

	// Middleware
	TokenMiddleware *iam.TokenMiddleware

	// Background Services
	RetentionSweeper *applysrv.RetentionSweeper
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Config.Database.Host,
		c.Config.Database.Port,
		c.Config.Database.User,
		c.Config.Database.Password,
		c.Config.Database.Name,
		c.Config.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("✅ Database connected")

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:         c.Config.Redis.Address(),
		Password:     c.Config.Redis.Password,
		DB:           c.Config.Redis.DB,
		PoolSize:     c.Config.Redis.PoolSize,
		MinIdleConns: c.Config.Redis.MinIdleConns,
		DialTimeout:  c.Config.Redis.DialTimeout,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required for draft persistence)", err)
	} else {
		logx.Info("✅ Redis connected")
	}

	// 3. File Storage Configuration (Local or S3)
	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		cfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "")
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)",
			c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Repositories ---
	draftRepo := applyinfra.NewRedisDraftRepository(c.Redis)
	applicationRepo := applyinfra.NewPostgresApplicationRepository(c.DB)
	cameraSignaler := applyinfra.NewRedisCameraSignaler(c.Redis, c.Config.Draft.CameraChannel)
	interviewRepo := scheduleinfra.NewPostgresInterviewRepository(c.DB)
	directoryRepo := scheduleinfra.NewPostgresDirectoryRepository(c.DB)

	// --- Token Service ---
	c.TokenService = iam.NewJWTServiceFromConfig(&c.Config.Auth.JWT)

	// --- CV Parser ---
	switch c.Config.Parse.Mode {
	case "openai":
		c.CVParser = cvparse.NewOpenAIParser(c.Config.Parse.OpenAIAPIKey, c.Config.Parse.OpenAIModel)
		logx.Infof("✅ OpenAI CV parser enabled (model: %s)", c.Config.Parse.OpenAIModel)
	default:
		c.CVParser = cvparse.NewStubParser(c.Config.Parse.StubDelay)
		logx.Warn("⚠️  Using stub CV parser (set CV_PARSE_MODE=openai for real extraction)")
	}

	// --- Domain Services ---
	c.DraftService = applysrv.NewDraftService(
		draftRepo,
		applicationRepo,
		cameraSignaler,
		c.FileSystem,
		&c.Config.Draft,
	)

	c.ScheduleService = schedulesrv.NewScheduleService(
		interviewRepo,
		directoryRepo,
	)

	// --- API Handlers ---
	c.DraftHandlers = applyapi.NewDraftHandlers(c.DraftService, c.CVParser)
	c.ScheduleHandlers = scheduleapi.NewScheduleHandlers(c.ScheduleService)

	// --- Middleware ---
	c.TokenMiddleware = iam.NewTokenMiddleware(c.TokenService)

	// --- Background Services ---
	c.RetentionSweeper = applysrv.NewRetentionSweeper(draftRepo, c.FileSystem, &c.Config.Draft)

	logx.Info("✅ All services and handlers initialized")
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	if err := c.RetentionSweeper.Start(); err != nil {
		logx.Fatalf("Failed to start draft retention sweeper: %v", err)
	}
	logx.Info("✅ Draft retention sweeper started")
}

// Cleanup closes all connections and stops workers
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.RetentionSweeper != nil {
		c.RetentionSweeper.Stop()
		logx.Info("✅ Retention sweeper stopped")
	}

	// Close database connection
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	// Close Redis connection
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
