package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modaworks/vesti/internal/analytics/entity"
	"github.com/modaworks/vesti/internal/analytics/handler"
	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/service"
	"github.com/modaworks/vesti/internal/config"
	"github.com/modaworks/vesti/internal/middleware"
	"github.com/modaworks/vesti/internal/shared/insight"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 로거 초기화
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting vesti analytics service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 데이터베이스 초기화
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&entity.SalesRecord{}, &entity.Material{}); err != nil {
		zapLogger.Fatal("Failed to migrate tables", zap.Error(err))
	}

	// Redis 초기화
	rdb := initRedis(cfg.Redis)

	// MinIO 초기화 (백업 스토리지, 미설정 시 nil)
	minioClient := initMinIO(cfg.MinIO, zapLogger)

	// 외부 인사이트 서비스 클라이언트 (미설정 시 nil)
	var insightClient *insight.Client
	if cfg.Insight.BaseURL != "" {
		insightClient = insight.NewClient(cfg.Insight.BaseURL, cfg.Insight.APIKey)
	}

	// 의존성 초기화
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, insightClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services, cfg)

	// 백업 버킷 준비
	if minioClient != nil {
		if err := services.Backup.EnsureBucket(context.Background()); err != nil {
			zapLogger.Warn("Failed to ensure backup bucket", zap.Error(err))
		}
	}

	// Gin 모드 설정
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 라우터 생성
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers, cfg)

	// HTTP 서버
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 우아한 종료
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinIO(cfg config.MinIOConfig, zapLogger *zap.Logger) *minio.Client {
	if cfg.Endpoint == "" {
		zapLogger.Warn("MinIO not configured, backup endpoints disabled")
		return nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		zapLogger.Warn("Failed to init MinIO client", zap.Error(err))
		return nil
	}
	return client
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 헬스 체크
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 버전
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 인증 (비로그인)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// 인증 필요
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)

			// 판매 데이터
			sales := authorized.Group("/sales")
			{
				sales.GET("", h.Sales.List)
				sales.POST("", h.Sales.Create)
				sales.DELETE("", h.Sales.DeleteAll)
				sales.POST("/import", h.Sales.Import)
				sales.GET("/export", h.Sales.Export)
				sales.GET("/template", h.Sales.Template)
				sales.GET("/:id", h.Sales.Get)
				sales.PUT("/:id", h.Sales.Update)
				sales.DELETE("/:id", h.Sales.Delete)
			}

			// 소재 데이터
			materials := authorized.Group("/materials")
			{
				materials.GET("", h.Material.List)
				materials.POST("", h.Material.Create)
				materials.DELETE("", h.Material.DeleteAll)
				materials.POST("/import", h.Material.Import)
				materials.GET("/export", h.Material.Export)
				materials.GET("/template", h.Material.Template)
				materials.GET("/analysis", h.Material.Analysis)
				materials.GET("/analysis/:name", h.Material.AnalysisDetail)
				materials.GET("/:id", h.Material.Get)
				materials.PUT("/:id", h.Material.Update)
				materials.DELETE("/:id", h.Material.Delete)
				materials.GET("/:id/blend", h.Material.GetBlend)
			}

			// 대시보드
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/summary", h.Dashboard.Summary)
				dashboard.GET("/breakdown", h.Dashboard.Breakdown)
				dashboard.GET("/heatmap", h.Dashboard.Heatmap)
			}

			// 조합 랭킹
			authorized.GET("/rankings/combinations", h.Ranking.Combinations)

			// 예측
			predict := authorized.Group("/predict")
			{
				predict.POST("/combination", h.Prediction.Combination)
				predict.POST("/remote", h.Prediction.Remote)
			}

			// 챗 어시스턴트 / 인사이트
			authorized.POST("/assistant/ask", h.Assistant.Ask)
			authorized.GET("/insight", h.Assistant.Insight)

			// 백업
			backups := authorized.Group("/backups")
			{
				backups.POST("", h.Backup.Create)
				backups.GET("", h.Backup.List)
				backups.GET("/download", h.Backup.Download)
			}

			// SSE
			authorized.GET("/events", h.SSE.Stream)
		}
	}
}
