package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/config"
	"github.com/modaworks/vesti/internal/shared/insight"
)

// Services 서비스 집합
type Services struct {
	Sales      *SalesService
	Material   *MaterialService
	Dashboard  *DashboardService
	Ranking    *RankingService
	Prediction *PredictionService
	Assistant  *AssistantService
	Backup     *BackupService
}

func NewServices(
	repos *repository.Repositories,
	rdb *redis.Client,
	minioClient *minio.Client,
	insightClient *insight.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	cache := NewCache(rdb, cfg.Redis.CacheTTL, logger)

	salesSvc := NewSalesService(repos.Sales, cache)
	materialSvc := NewMaterialService(repos.Material, cache)

	return &Services{
		Sales:      salesSvc,
		Material:   materialSvc,
		Dashboard:  NewDashboardService(repos.Stats, salesSvc, cache),
		Ranking:    NewRankingService(salesSvc),
		Prediction: NewPredictionService(salesSvc, insightClient),
		Assistant:  NewAssistantService(repos.Stats, insightClient),
		Backup:     NewBackupService(repos.Sales, repos.Material, minioClient, cfg.MinIO.Bucket),
	}
}
