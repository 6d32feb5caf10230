package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/modaworks/vesti/internal/analytics/entity"
	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/sse"
	"github.com/modaworks/vesti/internal/analytics/stylecode"
)

type SalesService struct {
	repo  *repository.SalesRepository
	cache *Cache
}

func NewSalesService(repo *repository.SalesRepository, cache *Cache) *SalesService {
	return &SalesService{repo: repo, cache: cache}
}

type CreateSalesRequest struct {
	StyleCode     string  `json:"style_code" binding:"required"`
	Color         string  `json:"color" binding:"required"`
	Price         float64 `json:"price"`
	Manufacturing string  `json:"manufacturing" binding:"required"`
	MaterialName  string  `json:"material_name"`
	Fit           string  `json:"fit"`
	Length        string  `json:"length"`
	Quantity      int64   `json:"quantity" binding:"min=0"`
	Revenue       float64 `json:"revenue" binding:"min=0"`
}

func (s *SalesService) Create(ctx context.Context, req CreateSalesRequest, userID string) (*entity.SalesRecord, error) {
	record := &entity.SalesRecord{
		ID:            uuid.New().String(),
		StyleCode:     req.StyleCode,
		Color:         req.Color,
		Price:         req.Price,
		Manufacturing: req.Manufacturing,
		MaterialName:  req.MaterialName,
		Fit:           req.Fit,
		Length:        req.Length,
		Quantity:      req.Quantity,
		Revenue:       req.Revenue,
		CreatedBy:     userID,
	}

	if err := s.repo.Create(record); err != nil {
		return nil, fmt.Errorf("판매 레코드 생성 실패: %w", err)
	}

	s.cache.Invalidate(ctx)
	sse.PublishSalesChanged("created")
	return record, nil
}

func (s *SalesService) GetByID(id string) (*entity.SalesRecord, error) {
	return s.repo.GetByID(id)
}

func (s *SalesService) List(params repository.SalesListParams) ([]entity.SalesRecord, int64, error) {
	return s.repo.List(params)
}

type UpdateSalesRequest struct {
	Color         *string  `json:"color"`
	Price         *float64 `json:"price"`
	Manufacturing *string  `json:"manufacturing"`
	MaterialName  *string  `json:"material_name"`
	Fit           *string  `json:"fit"`
	Length        *string  `json:"length"`
	Quantity      *int64   `json:"quantity"`
	Revenue       *float64 `json:"revenue"`
}

func (s *SalesService) Update(ctx context.Context, id string, req UpdateSalesRequest) (*entity.SalesRecord, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("판매 레코드가 없습니다: %w", err)
	}

	if req.Color != nil {
		record.Color = *req.Color
	}
	if req.Price != nil {
		record.Price = *req.Price
	}
	if req.Manufacturing != nil {
		record.Manufacturing = *req.Manufacturing
	}
	if req.MaterialName != nil {
		record.MaterialName = *req.MaterialName
	}
	if req.Fit != nil {
		record.Fit = *req.Fit
	}
	if req.Length != nil {
		record.Length = *req.Length
	}
	if req.Quantity != nil {
		record.Quantity = *req.Quantity
	}
	if req.Revenue != nil {
		record.Revenue = *req.Revenue
	}

	if err := s.repo.Update(record); err != nil {
		return nil, fmt.Errorf("판매 레코드 수정 실패: %w", err)
	}

	s.cache.Invalidate(ctx)
	sse.PublishSalesChanged("updated")
	return record, nil
}

func (s *SalesService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("판매 레코드가 없습니다: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("판매 레코드 삭제 실패: %w", err)
	}
	s.cache.Invalidate(ctx)
	sse.PublishSalesChanged("deleted")
	return nil
}

// DeleteAll 전체 삭제. 복구 불가이므로 핸들러에서 confirm 파라미터를 요구한다.
func (s *SalesService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(); err != nil {
		return fmt.Errorf("판매 데이터 전체 삭제 실패: %w", err)
	}
	s.cache.Invalidate(ctx)
	sse.PublishSalesChanged("cleared")
	return nil
}

// ListEnriched 전체 판매 레코드에 품번 디코딩 결과를 조인해 반환한다.
// 대시보드/랭킹/예측 집계의 공통 입력.
func (s *SalesService) ListEnriched() ([]entity.EnrichedSale, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("판매 데이터 조회 실패: %w", err)
	}
	return Enrich(records), nil
}

// Enrich 판매 레코드 슬라이스에 디코딩된 품번 필드를 조인한다
func Enrich(records []entity.SalesRecord) []entity.EnrichedSale {
	enriched := make([]entity.EnrichedSale, 0, len(records))
	for _, record := range records {
		enriched = append(enriched, entity.EnrichedSale{
			SalesRecord: record,
			StyleInfo:   stylecode.Decode(record.StyleCode),
		})
	}
	return enriched
}

func (s *SalesService) Count() (int64, error) {
	return s.repo.Count()
}
