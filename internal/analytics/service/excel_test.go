package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modaworks/vesti/internal/analytics/entity"
)

func salesSheet(rows ...[]string) [][]string {
	sheet := [][]string{
		{"품번", "컬러", "판매가", "제조방식", "소재명", "핏", "기장", "누적판매수량", "누적판매금액"},
	}
	return append(sheet, rows...)
}

func TestParseSalesRows(t *testing.T) {
	rows := salesSheet(
		[]string{"STMKT00125S", "블랙", "59,000", "스웨터", "램스울", "오버핏", "레귤러", "120", "7,080,000"},
		[]string{"STWTS00225S", "화이트", "29000", "컷앤소", "코튼저지", "레귤러핏", "크롭", "340", "9860000"},
	)

	records, result := ParseSalesRows(rows, "user-1")
	require.Len(t, records, 2)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	r := records[0]
	assert.Equal(t, "STMKT00125S", r.StyleCode)
	assert.Equal(t, "블랙", r.Color)
	assert.Equal(t, 59000.0, r.Price)
	assert.Equal(t, entity.ManufacturingSweater, r.Manufacturing)
	assert.Equal(t, int64(120), r.Quantity)
	assert.Equal(t, 7080000.0, r.Revenue)
	assert.Equal(t, "user-1", r.CreatedBy)
	assert.NotEmpty(t, r.ID)

	assert.Equal(t, entity.ManufacturingCutSew, records[1].Manufacturing)
}

func TestParseSalesRowsSkipsInvalidRows(t *testing.T) {
	rows := salesSheet(
		[]string{"", "블랙", "59000", "스웨터", "램스울", "오버핏", "레귤러", "120", "7080000"},
		[]string{"STMKT00125S", "블랙", "59000", "스웨터", "램스울", "오버핏", "레귤러", "abc", "7080000"},
		[]string{"STMKT00125S", "블랙", "59000"},
		[]string{"", "", "", "", "", "", "", "", ""},
		[]string{"STWJK00324F", "네이비", "189000", "우븐", "나일론택타일", "세미오버", "롱", "45", "8505000"},
	)

	records, result := ParseSalesRows(rows, "user-1")
	require.Len(t, records, 1)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "품번/컬러 누락", result.Errors[0].Reason)
	assert.Equal(t, "누적판매수량이 올바르지 않습니다", result.Errors[1].Reason)
	assert.Equal(t, "컬럼 수 부족", result.Errors[2].Reason)
	assert.Equal(t, entity.ManufacturingWoven, records[0].Manufacturing)
}

func TestParseMaterialRows(t *testing.T) {
	rows := [][]string{
		{"소재명", "소재업체", "혼용섬유", "혼용비율", "중량(gsm)", "조직", "등급"},
		{"램스울", "대한모직", "울/나일론", "80/20", "350", "Knit", "a"},
		{"코튼저지", "한신섬유", "면/스판", "95/5", "180", "knit", "B"},
		{"", "업체", "면", "100", "200", "knit", "A"},
	}

	materials, result := ParseMaterialRows(rows, "user-2")
	require.Len(t, materials, 2)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	m := materials[0]
	assert.Equal(t, "램스울", m.Name)
	assert.Equal(t, "knit", m.Structure)
	assert.Equal(t, "A", m.FabricGrade)
	assert.Equal(t, 350.0, m.WeightGSM)

	// 혼용율 파싱 결과가 비정규화 컬럼에 반영되어야 한다
	jersey := materials[1]
	assert.InDelta(t, 95.0, jersey.CottonPct, 0.001)
}

func TestSalesTemplateHeaders(t *testing.T) {
	f, err := SalesTemplate()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("판매데이터")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, salesHeaders, rows[0])
	assert.Equal(t, "STMKT00125S", rows[1][0])
}

func TestMaterialTemplateHeaders(t *testing.T) {
	f, err := MaterialTemplate()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("소재데이터")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, materialHeaders, rows[0])
}

func TestReadCSVStripsBOM(t *testing.T) {
	data := []byte("\uFEFF품번,컬러\nSTMKT00125S,블랙\n")
	rows, err := readCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "품번", rows[0][0])
}

func TestParseNumber(t *testing.T) {
	v, err := parseNumber(" 1,234,567.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1234567.5, v)

	v, err = parseNumber("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = parseNumber("abc")
	assert.Error(t, err)
}

func TestNormalizeManufacturing(t *testing.T) {
	assert.Equal(t, entity.ManufacturingCutSew, normalizeManufacturing("컷앤소"))
	assert.Equal(t, entity.ManufacturingWoven, normalizeManufacturing(" Woven "))
	assert.Equal(t, entity.ManufacturingSweater, normalizeManufacturing("니트"))
	assert.Equal(t, "기타", normalizeManufacturing("기타"))
}
