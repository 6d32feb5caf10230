package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/modaworks/vesti/internal/analytics/entity"
	"github.com/modaworks/vesti/internal/analytics/repository"
)

// DashboardService 대시보드 집계.
// 컬럼으로 닫히는 차원은 SQL로, 품번 디코딩이 필요한 차원은 메모리 groupby로 계산한다.
type DashboardService struct {
	stats    *repository.StatsRepository
	salesSvc *SalesService
	cache    *Cache
}

func NewDashboardService(stats *repository.StatsRepository, salesSvc *SalesService, cache *Cache) *DashboardService {
	return &DashboardService{stats: stats, salesSvc: salesSvc, cache: cache}
}

// ValidDimensions 분포/히트맵에서 허용하는 차원
var ValidDimensions = map[string]bool{
	"gender":        true,
	"item":          true,
	"category":      true,
	"season":        true,
	"manufacturing": true,
	"color":         true,
	"material":      true,
	"fit":           true,
	"length":        true,
}

// dimValue 인리치드 행에서 차원 값을 뽑는다
func dimValue(r entity.EnrichedSale, dim string) string {
	switch dim {
	case "gender":
		return r.Gender
	case "item":
		return r.Item
	case "category":
		return r.Category
	case "season":
		return r.Season
	case "manufacturing":
		return r.Manufacturing
	case "color":
		return r.Color
	case "material":
		return r.MaterialName
	case "fit":
		return r.Fit
	case "length":
		return r.Length
	}
	return ""
}

func (s *DashboardService) GetSummary(ctx context.Context) (*repository.SalesSummary, error) {
	var cached repository.SalesSummary
	if s.cache.GetJSON(ctx, "summary", &cached) {
		return &cached, nil
	}

	summary, err := s.stats.GetSalesSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("대시보드 요약 조회 실패: %w", err)
	}

	s.cache.SetJSON(ctx, "summary", summary)
	return summary, nil
}

// BreakdownRow 차원 분포 행
type BreakdownRow struct {
	Key           string  `json:"key"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// GetBreakdown 차원별 누적판매 분포 (판매량 내림차순, 상위 limit개)
func (s *DashboardService) GetBreakdown(ctx context.Context, dim string, limit int) ([]BreakdownRow, error) {
	if !ValidDimensions[dim] {
		return nil, fmt.Errorf("지원하지 않는 차원입니다: %s", dim)
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("breakdown:%s:%d", dim, limit)
	var cached []BreakdownRow
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	// 컬럼 차원이면 SQL로 내린다
	if cols, ok, err := s.stats.GetColumnBreakdown(ctx, dim, limit); ok {
		if err != nil {
			return nil, fmt.Errorf("분포 조회 실패: %w", err)
		}
		rows := make([]BreakdownRow, 0, len(cols))
		for _, c := range cols {
			rows = append(rows, BreakdownRow(c))
		}
		s.cache.SetJSON(ctx, cacheKey, rows)
		return rows, nil
	}

	// 디코딩 차원은 메모리 groupby
	enriched, err := s.salesSvc.ListEnriched()
	if err != nil {
		return nil, err
	}

	type agg struct {
		qty     int64
		revenue float64
	}
	byKey := map[string]*agg{}
	for _, r := range enriched {
		key := dimValue(r, dim)
		if key == "" {
			continue
		}
		a, ok := byKey[key]
		if !ok {
			a = &agg{}
			byKey[key] = a
		}
		a.qty += r.Quantity
		a.revenue += r.Revenue
	}

	rows := make([]BreakdownRow, 0, len(byKey))
	for key, a := range byKey {
		rows = append(rows, BreakdownRow{Key: key, TotalQuantity: a.qty, TotalRevenue: a.revenue})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalQuantity != rows[j].TotalQuantity {
			return rows[i].TotalQuantity > rows[j].TotalQuantity
		}
		return rows[i].Key < rows[j].Key
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	s.cache.SetJSON(ctx, cacheKey, rows)
	return rows, nil
}

// Heatmap X/Y 차원 교차 판매량 피벗. 빈 셀은 0으로 채운다.
type Heatmap struct {
	XLabels []string  `json:"x_labels"`
	YLabels []string  `json:"y_labels"`
	Cells   [][]int64 `json:"cells"` // [y][x]
}

func (s *DashboardService) GetHeatmap(ctx context.Context, xDim, yDim string) (*Heatmap, error) {
	if !ValidDimensions[xDim] || !ValidDimensions[yDim] {
		return nil, fmt.Errorf("지원하지 않는 차원입니다: %s / %s", xDim, yDim)
	}
	if xDim == yDim {
		return nil, fmt.Errorf("X축과 Y축은 서로 달라야 합니다")
	}

	enriched, err := s.salesSvc.ListEnriched()
	if err != nil {
		return nil, err
	}

	xSet := map[string]bool{}
	ySet := map[string]bool{}
	counts := map[[2]string]int64{}
	for _, r := range enriched {
		x := dimValue(r, xDim)
		y := dimValue(r, yDim)
		if x == "" || y == "" {
			continue
		}
		xSet[x] = true
		ySet[y] = true
		counts[[2]string{y, x}] += r.Quantity
	}

	heatmap := &Heatmap{
		XLabels: sortedKeys(xSet),
		YLabels: sortedKeys(ySet),
	}
	heatmap.Cells = make([][]int64, len(heatmap.YLabels))
	for yi, y := range heatmap.YLabels {
		row := make([]int64, len(heatmap.XLabels))
		for xi, x := range heatmap.XLabels {
			row[xi] = counts[[2]string{y, x}]
		}
		heatmap.Cells[yi] = row
	}
	return heatmap, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetMaterialStats 소재별 성과 요약 (소재 분석 메뉴 상단 테이블)
func (s *DashboardService) GetMaterialStats(ctx context.Context) ([]repository.MaterialStat, error) {
	var cached []repository.MaterialStat
	if s.cache.GetJSON(ctx, "material-stats", &cached) {
		return cached, nil
	}

	stats, err := s.stats.ListMaterialStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("소재 통계 조회 실패: %w", err)
	}

	s.cache.SetJSON(ctx, "material-stats", stats)
	return stats, nil
}

// MaterialDetail 소재 상세 분석
type MaterialDetail struct {
	MaterialName    string           `json:"material_name"`
	TotalQuantity   int64            `json:"total_quantity"`
	AvgQuantity     float64          `json:"avg_quantity"`
	SKUCount        int              `json:"sku_count"`
	ByItem          []BreakdownRow   `json:"by_item"`
	ByManufacturing []BreakdownRow   `json:"by_manufacturing"`
	Material        *entity.Material `json:"material,omitempty"`
}

// GetMaterialDetail 특정 소재의 아이템별/제조방식별 성과와 소재 마스터 정보.
// 소재 마스터에 매칭 행이 없으면 Material은 nil로 내려간다 (best-effort 매칭).
func (s *DashboardService) GetMaterialDetail(ctx context.Context, name string, materialSvc *MaterialService) (*MaterialDetail, error) {
	enriched, err := s.salesSvc.ListEnriched()
	if err != nil {
		return nil, err
	}

	detail := &MaterialDetail{MaterialName: name}
	skuSet := map[string]bool{}
	byItem := map[string]*BreakdownRow{}
	byManu := map[string]*BreakdownRow{}
	var n int
	for _, r := range enriched {
		if r.MaterialName != name {
			continue
		}
		n++
		detail.TotalQuantity += r.Quantity
		skuSet[r.StyleCode] = true

		if row, ok := byItem[r.Item]; ok {
			row.TotalQuantity += r.Quantity
			row.TotalRevenue += r.Revenue
		} else {
			byItem[r.Item] = &BreakdownRow{Key: r.Item, TotalQuantity: r.Quantity, TotalRevenue: r.Revenue}
		}
		if row, ok := byManu[r.Manufacturing]; ok {
			row.TotalQuantity += r.Quantity
			row.TotalRevenue += r.Revenue
		} else {
			byManu[r.Manufacturing] = &BreakdownRow{Key: r.Manufacturing, TotalQuantity: r.Quantity, TotalRevenue: r.Revenue}
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("해당 소재의 판매 데이터가 없습니다: %s", name)
	}

	detail.AvgQuantity = float64(detail.TotalQuantity) / float64(n)
	detail.SKUCount = len(skuSet)
	detail.ByItem = flattenSorted(byItem)
	detail.ByManufacturing = flattenSorted(byManu)

	if m, err := materialSvc.GetByName(name); err == nil {
		detail.Material = m
	}
	return detail, nil
}

func flattenSorted(byKey map[string]*BreakdownRow) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalQuantity != rows[j].TotalQuantity {
			return rows[i].TotalQuantity > rows[j].TotalQuantity
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
