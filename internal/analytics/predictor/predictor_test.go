package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modaworks/vesti/internal/analytics/entity"
)

func row(gender, item, manu, material, fit, length string, qty int64, revenue float64) entity.EnrichedSale {
	var r entity.EnrichedSale
	r.Gender = gender
	r.Item = item
	r.Manufacturing = manu
	r.MaterialName = material
	r.Fit = fit
	r.Length = length
	r.Quantity = qty
	r.Revenue = revenue
	return r
}

var target = Target{
	Gender:        "Men",
	Item:          "Knit",
	Manufacturing: entity.ManufacturingSweater,
	Material:      "램스울",
	Fit:           "오버핏",
	Length:        "레귤러",
}

func TestPredictExactTier(t *testing.T) {
	rows := []entity.EnrichedSale{
		row("Men", "Knit", "sweater", "램스울", "오버핏", "레귤러", 100, 5000000),
		row("Men", "Knit", "sweater", "램스울", "오버핏", "레귤러", 200, 9000000),
		// 핏이 다른 행은 exact 단계에서 제외
		row("Men", "Knit", "sweater", "램스울", "슬림핏", "레귤러", 999, 1),
	}

	res := Predict(rows, target)
	require.NotNil(t, res)

	assert.Equal(t, 1, res.Tier)
	assert.Equal(t, 95, res.Confidence)
	assert.Equal(t, 2, res.SampleSize)
	assert.InDelta(t, 150, res.AvgQuantity, 0.001)
	assert.InDelta(t, 7000000, res.AvgRevenue, 0.001)
}

func TestPredictFallsBackThroughTiers(t *testing.T) {
	// 핏/기장만 다른 이력 -> tier 2
	rows := []entity.EnrichedSale{
		row("Men", "Knit", "sweater", "램스울", "슬림핏", "크롭", 80, 4000000),
	}
	res := Predict(rows, target)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Tier)
	assert.Equal(t, 80, res.Confidence)

	// 소재까지 다른 이력 -> tier 3
	rows = []entity.EnrichedSale{
		row("Men", "Knit", "sweater", "캐시미어", "슬림핏", "크롭", 80, 4000000),
	}
	res = Predict(rows, target)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Tier)
	assert.Equal(t, 65, res.Confidence)

	// 제조방식까지 다른 이력 -> tier 4
	rows = []entity.EnrichedSale{
		row("Men", "Knit", "cutsew", "캐시미어", "슬림핏", "크롭", 80, 4000000),
	}
	res = Predict(rows, target)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.Tier)
	assert.Equal(t, 45, res.Confidence)
	assert.Equal(t, "item_only", res.TierLabel)
}

func TestPredictAlwaysReturnsHighestTierWithRows(t *testing.T) {
	// tier 1과 tier 3 후보가 섞여 있으면 tier 1만 집계해야 한다
	rows := []entity.EnrichedSale{
		row("Men", "Knit", "sweater", "램스울", "오버핏", "레귤러", 10, 100),
		row("Men", "Knit", "sweater", "아크릴혼방", "슬림핏", "크롭", 1000, 999999),
		row("Men", "Knit", "cutsew", "면", "슬림핏", "크롭", 1000, 999999),
	}

	res := Predict(rows, target)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Tier)
	assert.Equal(t, 1, res.SampleSize)
	assert.InDelta(t, 10, res.AvgQuantity, 0.001)
}

func TestPredictNoHistory(t *testing.T) {
	rows := []entity.EnrichedSale{
		row("Women", "Coat", "woven", "울", "오버핏", "롱", 50, 2500000),
	}

	assert.Nil(t, Predict(rows, target))
	assert.Nil(t, Predict(nil, target))
}
