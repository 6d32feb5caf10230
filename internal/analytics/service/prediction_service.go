package service

import (
	"context"
	"fmt"

	"github.com/modaworks/vesti/internal/analytics/predictor"
	"github.com/modaworks/vesti/internal/shared/insight"
)

// PredictionService 조합 예측.
// 로컬은 규칙 기반 계단식 평균, 원격은 외부 모델 서비스 프록시.
type PredictionService struct {
	salesSvc      *SalesService
	insightClient *insight.Client
}

func NewPredictionService(salesSvc *SalesService, insightClient *insight.Client) *PredictionService {
	return &PredictionService{salesSvc: salesSvc, insightClient: insightClient}
}

// PredictCombination 과거 이력에 대한 계단식 best-available-match 예측
func (s *PredictionService) PredictCombination(target predictor.Target) (*predictor.Result, error) {
	enriched, err := s.salesSvc.ListEnriched()
	if err != nil {
		return nil, err
	}

	result := predictor.Predict(enriched, target)
	if result == nil {
		return nil, fmt.Errorf("매칭되는 판매 이력이 없습니다")
	}
	return result, nil
}

// PredictRemote 외부 모델 기반 예측을 호출한다. 실패 시 재시도 없이 그대로 반환.
func (s *PredictionService) PredictRemote(ctx context.Context, target predictor.Target) (*insight.PredictResponse, error) {
	if s.insightClient == nil {
		return nil, fmt.Errorf("외부 예측 서비스가 설정되지 않았습니다")
	}
	return s.insightClient.Predict(ctx, insight.PredictRequest{
		Gender:        target.Gender,
		Item:          target.Item,
		Manufacturing: target.Manufacturing,
		Material:      target.Material,
		Fit:           target.Fit,
		Length:        target.Length,
	})
}
