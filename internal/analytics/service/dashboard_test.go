package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/modaworks/vesti/internal/analytics/entity"
	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/testutil"
)

type testServices struct {
	sales     *SalesService
	material  *MaterialService
	dashboard *DashboardService
	ranking   *RankingService
}

func setupServices(t *testing.T) (*testServices, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	cache := NewCache(nil, 0, zap.NewNop())

	salesSvc := NewSalesService(repos.Sales, cache)
	materialSvc := NewMaterialService(repos.Material, cache)
	return &testServices{
		sales:     salesSvc,
		material:  materialSvc,
		dashboard: NewDashboardService(repos.Stats, salesSvc, cache),
		ranking:   NewRankingService(salesSvc),
	}, db
}

func seedSales(t *testing.T, db *gorm.DB, records []entity.SalesRecord) {
	t.Helper()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.New().String()
		}
		if records[i].CreatedBy == "" {
			records[i].CreatedBy = "seed"
		}
	}
	require.NoError(t, db.Create(&records).Error)
}

func TestDashboardSummary(t *testing.T) {
	svcs, db := setupServices(t)
	seedSales(t, db, []entity.SalesRecord{
		{StyleCode: "STMKT00125S", Color: "블랙", Price: 59000, Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 100, Revenue: 5900000},
		{StyleCode: "STMKT00125S", Color: "네이비", Price: 59000, Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 50, Revenue: 2950000},
		{StyleCode: "STWTS00225S", Color: "화이트", Price: 29000, Manufacturing: entity.ManufacturingCutSew,
			MaterialName: "코튼저지", Fit: "레귤러핏", Length: "크롭", Quantity: 200, Revenue: 5800000},
	})

	summary, err := svcs.dashboard.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(350), summary.TotalQuantity)
	assert.Equal(t, 14650000.0, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.SKUCount)
}

func TestDashboardBreakdown(t *testing.T) {
	svcs, db := setupServices(t)
	seedSales(t, db, []entity.SalesRecord{
		{StyleCode: "STMKT00125S", Color: "블랙", Price: 59000, Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 100, Revenue: 5900000},
		{StyleCode: "STWTS00225S", Color: "화이트", Price: 29000, Manufacturing: entity.ManufacturingCutSew,
			MaterialName: "코튼저지", Fit: "레귤러핏", Length: "크롭", Quantity: 200, Revenue: 5800000},
		{StyleCode: "STWJK00324F", Color: "블랙", Price: 189000, Manufacturing: entity.ManufacturingWoven,
			MaterialName: "나일론택타일", Fit: "세미오버", Length: "롱", Quantity: 40, Revenue: 7560000},
	})

	// 컬럼 차원은 SQL 경로
	rows, err := svcs.dashboard.GetBreakdown(context.Background(), "manufacturing", 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.ManufacturingCutSew, rows[0].Key)
	assert.Equal(t, int64(200), rows[0].TotalQuantity)

	// 품번 디코딩 차원은 메모리 groupby 경로
	rows, err = svcs.dashboard.GetBreakdown(context.Background(), "gender", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Women", rows[0].Key)
	assert.Equal(t, int64(240), rows[0].TotalQuantity)
	assert.Equal(t, "Men", rows[1].Key)

	_, err = svcs.dashboard.GetBreakdown(context.Background(), "price", 10)
	assert.Error(t, err)
}

func TestDashboardHeatmap(t *testing.T) {
	svcs, db := setupServices(t)
	seedSales(t, db, []entity.SalesRecord{
		{StyleCode: "STMKT00125S", Color: "블랙", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 100, Revenue: 5900000},
		{StyleCode: "STWKT00225S", Color: "블랙", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 70, Revenue: 4130000},
		{StyleCode: "STWJK00324F", Color: "블랙", Manufacturing: entity.ManufacturingWoven,
			MaterialName: "나일론택타일", Fit: "세미오버", Length: "롱", Quantity: 40, Revenue: 7560000},
	})

	hm, err := svcs.dashboard.GetHeatmap(context.Background(), "gender", "item")
	require.NoError(t, err)
	assert.Equal(t, []string{"Men", "Women"}, hm.XLabels)
	assert.Equal(t, []string{"Jacket", "Knit"}, hm.YLabels)
	// [y][x]: Jacket은 Women에만, Knit은 양쪽에 있다
	assert.Equal(t, int64(0), hm.Cells[0][0])
	assert.Equal(t, int64(40), hm.Cells[0][1])
	assert.Equal(t, int64(100), hm.Cells[1][0])
	assert.Equal(t, int64(70), hm.Cells[1][1])

	_, err = svcs.dashboard.GetHeatmap(context.Background(), "gender", "gender")
	assert.Error(t, err)
}

func TestRankCombinations(t *testing.T) {
	svcs, db := setupServices(t)
	seedSales(t, db, []entity.SalesRecord{
		{StyleCode: "STMKT00125S", Color: "블랙", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 100, Revenue: 5900000},
		{StyleCode: "STMKT00225S", Color: "그레이", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 60, Revenue: 3540000},
		{StyleCode: "STWTS00325S", Color: "화이트", Manufacturing: entity.ManufacturingCutSew,
			MaterialName: "코튼저지", Fit: "레귤러핏", Length: "크롭", Quantity: 30, Revenue: 870000},
	})

	stats, err := svcs.ranking.RankCombinations(MetricTotalQty, "best", 10)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Men / Knit / sweater / 램스울 / 오버핏 / 레귤러", stats[0].Combination)
	assert.Equal(t, int64(160), stats[0].TotalQuantity)
	assert.Equal(t, 80.0, stats[0].AvgQuantity)
	assert.Equal(t, 2, stats[0].RecordCount)

	worst, err := svcs.ranking.RankCombinations(MetricTotalQty, "worst", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(30), worst[0].TotalQuantity)

	_, err = svcs.ranking.RankCombinations("median_qty", "best", 10)
	assert.Error(t, err)
	_, err = svcs.ranking.RankCombinations(MetricTotalQty, "middling", 10)
	assert.Error(t, err)
}

func TestMaterialDetail(t *testing.T) {
	svcs, db := setupServices(t)
	seedSales(t, db, []entity.SalesRecord{
		{StyleCode: "STMKT00125S", Color: "블랙", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 100, Revenue: 5900000},
		{StyleCode: "STWKT00225S", Color: "그레이", Manufacturing: entity.ManufacturingSweater,
			MaterialName: "램스울", Fit: "오버핏", Length: "레귤러", Quantity: 60, Revenue: 3540000},
		{StyleCode: "STWTS00325S", Color: "화이트", Manufacturing: entity.ManufacturingCutSew,
			MaterialName: "코튼저지", Fit: "레귤러핏", Length: "크롭", Quantity: 30, Revenue: 870000},
	})

	detail, err := svcs.dashboard.GetMaterialDetail(context.Background(), "램스울", svcs.material)
	require.NoError(t, err)
	assert.Equal(t, int64(160), detail.TotalQuantity)
	assert.Equal(t, 80.0, detail.AvgQuantity)
	assert.Equal(t, 2, detail.SKUCount)
	require.Len(t, detail.ByItem, 1)
	assert.Equal(t, "Knit", detail.ByItem[0].Key)
	assert.Nil(t, detail.Material)

	_, err = svcs.dashboard.GetMaterialDetail(context.Background(), "없는소재", svcs.material)
	assert.Error(t, err)
}
