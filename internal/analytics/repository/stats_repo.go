package repository

import (
	"context"

	"gorm.io/gorm"
)

// StatsRepository 컬럼 단위로 닫히는 집계는 SQL로 처리한다.
// 디코딩된 품번 필드(성별/아이템/카테고리/시즌)가 끼는 집계는
// 서비스 레이어에서 메모리 groupby로 처리한다.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// SalesSummary 대시보드 상단 메트릭
type SalesSummary struct {
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgPrice      float64 `json:"avg_price"`
	SKUCount      int64   `json:"sku_count"`
}

func (r *StatsRepository) GetSalesSummary(ctx context.Context) (*SalesSummary, error) {
	summary := &SalesSummary{}

	row := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(quantity), 0)                  AS total_quantity,
			COALESCE(SUM(revenue), 0)                   AS total_revenue,
			COUNT(DISTINCT style_code)                  AS sku_count
		FROM sales_records
		WHERE deleted_at IS NULL
	`).Row()

	if err := row.Scan(
		&summary.TotalQuantity,
		&summary.TotalRevenue,
		&summary.SKUCount,
	); err != nil {
		return nil, err
	}

	if summary.TotalQuantity > 0 {
		summary.AvgPrice = summary.TotalRevenue / float64(summary.TotalQuantity)
	}
	return summary, nil
}

// MaterialStat 소재별 성과 요약 행
type MaterialStat struct {
	MaterialName  string  `json:"material_name"`
	TotalQuantity int64   `json:"total_quantity"`
	AvgQuantity   float64 `json:"avg_quantity"`
	RecordCount   int64   `json:"record_count"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgRevenue    float64 `json:"avg_revenue"`
	SKUCount      int64   `json:"sku_count"`
}

// ListMaterialStats 소재별 누적판매 집계. SKU 수는 품번 distinct 기준.
func (r *StatsRepository) ListMaterialStats(ctx context.Context) ([]MaterialStat, error) {
	var stats []MaterialStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			material_name                               AS material_name,
			COALESCE(SUM(quantity), 0)                  AS total_quantity,
			COALESCE(AVG(quantity), 0)                  AS avg_quantity,
			COUNT(*)                                    AS record_count,
			COALESCE(SUM(revenue), 0)                   AS total_revenue,
			COALESCE(AVG(revenue), 0)                   AS avg_revenue,
			COUNT(DISTINCT style_code)                  AS sku_count
		FROM sales_records
		WHERE deleted_at IS NULL AND material_name <> ''
		GROUP BY material_name
		ORDER BY total_quantity DESC
	`).Scan(&stats).Error
	return stats, err
}

// ColumnBreakdown 컬럼 차원 groupby 결과 행
type ColumnBreakdown struct {
	Key           string  `json:"key"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// breakdownColumns SQL로 내릴 수 있는 차원의 화이트리스트 (인젝션 방지)
var breakdownColumns = map[string]string{
	"manufacturing": "manufacturing",
	"color":         "color",
	"material":      "material_name",
}

// GetColumnBreakdown SQL groupby가 가능한 차원의 분포를 반환한다.
// 지원하지 않는 차원이면 (nil, false)를 반환해 호출측이 메모리 집계로 넘긴다.
func (r *StatsRepository) GetColumnBreakdown(ctx context.Context, dim string, limit int) ([]ColumnBreakdown, bool, error) {
	column, ok := breakdownColumns[dim]
	if !ok {
		return nil, false, nil
	}

	var rows []ColumnBreakdown
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			`+column+`                                  AS key,
			COALESCE(SUM(quantity), 0)                  AS total_quantity,
			COALESCE(SUM(revenue), 0)                   AS total_revenue
		FROM sales_records
		WHERE deleted_at IS NULL
		GROUP BY `+column+`
		ORDER BY total_quantity DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, true, err
}
