package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/modaworks/vesti/internal/analytics/entity"
	"github.com/modaworks/vesti/internal/analytics/fiberblend"
	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/sse"
)

type MaterialService struct {
	repo  *repository.MaterialRepository
	cache *Cache
}

func NewMaterialService(repo *repository.MaterialRepository, cache *Cache) *MaterialService {
	return &MaterialService{repo: repo, cache: cache}
}

type CreateMaterialRequest struct {
	Name        string  `json:"name" binding:"required"`
	Supplier    string  `json:"supplier"`
	BlendFibers string  `json:"blend_fibers"`
	BlendRatios string  `json:"blend_ratios"`
	WeightGSM   float64 `json:"weight_gsm"`
	Structure   string  `json:"structure"`
	FabricGrade string  `json:"fabric_grade"`
}

func (s *MaterialService) Create(ctx context.Context, req CreateMaterialRequest, userID string) (*entity.Material, error) {
	m := &entity.Material{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Supplier:    req.Supplier,
		BlendFibers: req.BlendFibers,
		BlendRatios: req.BlendRatios,
		WeightGSM:   req.WeightGSM,
		Structure:   req.Structure,
		FabricGrade: req.FabricGrade,
		CreatedBy:   userID,
	}
	applyBlendShares(m)

	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("소재 생성 실패: %w", err)
	}

	s.cache.Invalidate(ctx)
	sse.PublishMaterialsChanged("created")
	return m, nil
}

func (s *MaterialService) GetByID(id string) (*entity.Material, error) {
	return s.repo.GetByID(id)
}

func (s *MaterialService) GetByName(name string) (*entity.Material, error) {
	return s.repo.GetByName(name)
}

func (s *MaterialService) List(params repository.MaterialListParams) ([]entity.Material, int64, error) {
	return s.repo.List(params)
}

type UpdateMaterialRequest struct {
	Supplier    *string  `json:"supplier"`
	BlendFibers *string  `json:"blend_fibers"`
	BlendRatios *string  `json:"blend_ratios"`
	WeightGSM   *float64 `json:"weight_gsm"`
	Structure   *string  `json:"structure"`
	FabricGrade *string  `json:"fabric_grade"`
}

func (s *MaterialService) Update(ctx context.Context, id string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("소재가 없습니다: %w", err)
	}

	if req.Supplier != nil {
		m.Supplier = *req.Supplier
	}
	if req.BlendFibers != nil {
		m.BlendFibers = *req.BlendFibers
	}
	if req.BlendRatios != nil {
		m.BlendRatios = *req.BlendRatios
	}
	if req.WeightGSM != nil {
		m.WeightGSM = *req.WeightGSM
	}
	if req.Structure != nil {
		m.Structure = *req.Structure
	}
	if req.FabricGrade != nil {
		m.FabricGrade = *req.FabricGrade
	}
	applyBlendShares(m)

	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("소재 수정 실패: %w", err)
	}

	s.cache.Invalidate(ctx)
	sse.PublishMaterialsChanged("updated")
	return m, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("소재가 없습니다: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("소재 삭제 실패: %w", err)
	}
	s.cache.Invalidate(ctx)
	sse.PublishMaterialsChanged("deleted")
	return nil
}

func (s *MaterialService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(); err != nil {
		return fmt.Errorf("소재 데이터 전체 삭제 실패: %w", err)
	}
	s.cache.Invalidate(ctx)
	sse.PublishMaterialsChanged("cleared")
	return nil
}

// GetBlendShares 소재의 혼용율 문자열을 분류별 비중으로 파싱한다
func (s *MaterialService) GetBlendShares(id string) (*fiberblend.Shares, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("소재가 없습니다: %w", err)
	}
	shares, ok := fiberblend.Parse(m.BlendFibers, m.BlendRatios)
	if !ok {
		return nil, fmt.Errorf("혼용율을 해석할 수 없습니다: %q / %q", m.BlendFibers, m.BlendRatios)
	}
	return &shares, nil
}

func (s *MaterialService) Count() (int64, error) {
	return s.repo.Count()
}

// applyBlendShares 혼용율 파싱 결과를 역정규화 컬럼에 반영한다.
// 파싱 불가면 0으로 둔다 (폐기 규칙).
func applyBlendShares(m *entity.Material) {
	shares, ok := fiberblend.Parse(m.BlendFibers, m.BlendRatios)
	if !ok {
		m.CottonPct = 0
		m.SyntheticPct = 0
		return
	}
	m.CottonPct = shares.Cotton
	m.SyntheticPct = shares.Synthetic
}
