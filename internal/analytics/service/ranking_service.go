package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modaworks/vesti/internal/analytics/entity"
)

// RankingService 조합 성과 랭킹.
// 조합 키는 성별/아이템/제조방식/소재/핏/기장. 디코딩 필드가 섞여 있어 메모리에서 집계한다.
type RankingService struct {
	salesSvc *SalesService
}

func NewRankingService(salesSvc *SalesService) *RankingService {
	return &RankingService{salesSvc: salesSvc}
}

// 랭킹 기준
const (
	MetricTotalQty     = "total_qty"
	MetricAvgQty       = "avg_qty"
	MetricTotalRevenue = "total_revenue"
	MetricAvgRevenue   = "avg_revenue"
)

// ComboStat 조합별 집계 행
type ComboStat struct {
	Combination   string  `json:"combination"`
	TotalQuantity int64   `json:"total_quantity"`
	AvgQuantity   float64 `json:"avg_quantity"`
	RecordCount   int     `json:"record_count"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgRevenue    float64 `json:"avg_revenue"`
}

func (c ComboStat) metric(name string) float64 {
	switch name {
	case MetricTotalQty:
		return float64(c.TotalQuantity)
	case MetricAvgQty:
		return c.AvgQuantity
	case MetricTotalRevenue:
		return c.TotalRevenue
	case MetricAvgRevenue:
		return c.AvgRevenue
	}
	return 0
}

// comboKey 원본 도구와 동일하게 " / "로 이어붙인 조합 키
func comboKey(r entity.EnrichedSale) string {
	return strings.Join([]string{
		r.Gender, r.Item, r.Manufacturing, r.MaterialName, r.Fit, r.Length,
	}, " / ")
}

// RankCombinations 조합별 성과 랭킹. order는 best(내림차순) 또는 worst(오름차순).
// limit은 5~20 범위로 클램프한다.
func (s *RankingService) RankCombinations(metric, order string, limit int) ([]ComboStat, error) {
	switch metric {
	case MetricTotalQty, MetricAvgQty, MetricTotalRevenue, MetricAvgRevenue:
	case "":
		metric = MetricTotalQty
	default:
		return nil, fmt.Errorf("지원하지 않는 랭킹 기준입니다: %s", metric)
	}
	if order != "best" && order != "worst" {
		return nil, fmt.Errorf("order는 best 또는 worst여야 합니다: %s", order)
	}
	if limit < 5 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	enriched, err := s.salesSvc.ListEnriched()
	if err != nil {
		return nil, err
	}

	byCombo := map[string]*ComboStat{}
	for _, r := range enriched {
		key := comboKey(r)
		stat, ok := byCombo[key]
		if !ok {
			stat = &ComboStat{Combination: key}
			byCombo[key] = stat
		}
		stat.TotalQuantity += r.Quantity
		stat.TotalRevenue += r.Revenue
		stat.RecordCount++
	}

	stats := make([]ComboStat, 0, len(byCombo))
	for _, stat := range byCombo {
		stat.AvgQuantity = float64(stat.TotalQuantity) / float64(stat.RecordCount)
		stat.AvgRevenue = stat.TotalRevenue / float64(stat.RecordCount)
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		mi, mj := stats[i].metric(metric), stats[j].metric(metric)
		if mi != mj {
			if order == "best" {
				return mi > mj
			}
			return mi < mj
		}
		return stats[i].Combination < stats[j].Combination
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
