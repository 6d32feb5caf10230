package predictor

import (
	"github.com/modaworks/vesti/internal/analytics/entity"
)

// Target 예측 대상 조합
type Target struct {
	Gender        string `json:"gender" binding:"required"`
	Item          string `json:"item" binding:"required"`
	Manufacturing string `json:"manufacturing" binding:"required"`
	Material      string `json:"material"`
	Fit           string `json:"fit"`
	Length        string `json:"length"`
}

// Result 계단식 예측 결과
type Result struct {
	Tier        int     `json:"tier"`
	TierLabel   string  `json:"tier_label"`
	Confidence  int     `json:"confidence"`
	SampleSize  int     `json:"sample_size"`
	AvgQuantity float64 `json:"avg_quantity"`
	AvgRevenue  float64 `json:"avg_revenue"`
}

// 매칭 단계별 고정 신뢰도. 통계 모델이 아니라 순서 있는 폴백이므로
// 표본 수 가중이나 스무딩은 하지 않는다.
var tiers = []struct {
	label      string
	confidence int
	match      func(r entity.EnrichedSale, t Target) bool
}{
	{
		label:      "exact",
		confidence: 95,
		match: func(r entity.EnrichedSale, t Target) bool {
			return matchBase(r, t) && r.MaterialName == t.Material &&
				r.Fit == t.Fit && r.Length == t.Length
		},
	},
	{
		label:      "no_fit",
		confidence: 80,
		match: func(r entity.EnrichedSale, t Target) bool {
			return matchBase(r, t) && r.MaterialName == t.Material
		},
	},
	{
		label:      "no_material",
		confidence: 65,
		match:      matchBase,
	},
	{
		label:      "item_only",
		confidence: 45,
		match: func(r entity.EnrichedSale, t Target) bool {
			return r.Gender == t.Gender && r.Item == t.Item
		},
	},
}

func matchBase(r entity.EnrichedSale, t Target) bool {
	return r.Gender == t.Gender && r.Item == t.Item && r.Manufacturing == t.Manufacturing
}

// Predict 과거 판매 이력에서 가장 구체적인 매칭 단계를 찾아
// 해당 단계 행들의 평균 판매량/판매액을 반환한다.
// 어떤 단계에서도 매칭이 없으면 nil을 반환한다.
func Predict(rows []entity.EnrichedSale, target Target) *Result {
	for i, tier := range tiers {
		var qty, revenue float64
		var n int
		for _, row := range rows {
			if tier.match(row, target) {
				qty += float64(row.Quantity)
				revenue += row.Revenue
				n++
			}
		}
		if n == 0 {
			continue
		}
		return &Result{
			Tier:        i + 1,
			TierLabel:   tier.label,
			Confidence:  tier.confidence,
			SampleSize:  n,
			AvgQuantity: qty / float64(n),
			AvgRevenue:  revenue / float64(n),
		}
	}
	return nil
}
