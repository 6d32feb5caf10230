package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/modaworks/vesti/internal/analytics/entity"
)

// 임포트/익스포트 시트 헤더. 원본 입력 양식의 컬럼 순서를 그대로 따른다.
var salesHeaders = []string{
	"품번", "컬러", "판매가", "제조방식", "소재명", "핏", "기장", "누적판매수량", "누적판매금액",
}

var materialHeaders = []string{
	"소재명", "소재업체", "혼용섬유", "혼용비율", "중량(gsm)", "조직", "등급",
}

// ImportError 행 단위 임포트 실패 사유
type ImportError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult 일괄 임포트 결과. 실패 행은 건너뛰고 사유를 모아 반환한다.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// --- 판매 데이터 ---

// ParseSalesRows 시트/CSV의 문자열 행들을 판매 레코드로 변환한다.
// 첫 행은 헤더로 간주한다.
func ParseSalesRows(rows [][]string, userID string) ([]entity.SalesRecord, *ImportResult) {
	result := &ImportResult{}
	var records []entity.SalesRecord

	for i, row := range rows {
		if i == 0 {
			continue // 헤더
		}
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		if len(row) < 9 {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "컬럼 수 부족"})
			continue
		}

		styleCode := strings.TrimSpace(row[0])
		color := strings.TrimSpace(row[1])
		if styleCode == "" || color == "" {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "품번/컬러 누락"})
			continue
		}

		price, _ := parseNumber(row[2])
		quantity, err := strconv.ParseInt(strings.TrimSpace(row[7]), 10, 64)
		if err != nil || quantity < 0 {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "누적판매수량이 올바르지 않습니다"})
			continue
		}
		revenue, err := parseNumber(row[8])
		if err != nil || revenue < 0 {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "누적판매금액이 올바르지 않습니다"})
			continue
		}

		records = append(records, entity.SalesRecord{
			ID:            uuid.New().String(),
			StyleCode:     styleCode,
			Color:         color,
			Price:         price,
			Manufacturing: normalizeManufacturing(row[3]),
			MaterialName:  strings.TrimSpace(row[4]),
			Fit:           strings.TrimSpace(row[5]),
			Length:        strings.TrimSpace(row[6]),
			Quantity:      quantity,
			Revenue:       revenue,
			CreatedBy:     userID,
		})
		result.Imported++
	}
	return records, result
}

// ImportSalesXLSX 업로드된 xlsx에서 판매 레코드를 읽어 저장한다
func (s *SalesService) ImportSalesXLSX(f *excelize.File, userID string) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("시트 읽기 실패: %w", err)
	}

	records, result := ParseSalesRows(rows, userID)
	if err := s.repo.CreateBatch(records); err != nil {
		return nil, fmt.Errorf("판매 데이터 저장 실패: %w", err)
	}
	return result, nil
}

// ImportSalesCSV 업로드된 CSV에서 판매 레코드를 읽어 저장한다
func (s *SalesService) ImportSalesCSV(data []byte, userID string) (*ImportResult, error) {
	rows, err := readCSV(data)
	if err != nil {
		return nil, fmt.Errorf("CSV 파싱 실패: %w", err)
	}

	records, result := ParseSalesRows(rows, userID)
	if err := s.repo.CreateBatch(records); err != nil {
		return nil, fmt.Errorf("판매 데이터 저장 실패: %w", err)
	}
	return result, nil
}

// ExportSalesXLSX 전체 판매 데이터를 xlsx로 렌더링한다
func (s *SalesService) ExportSalesXLSX() (*excelize.File, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("판매 데이터 조회 실패: %w", err)
	}

	f := excelize.NewFile()
	sheet := "판매데이터"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, salesHeaders)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.StyleCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Color)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Price)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Manufacturing)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.MaterialName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Fit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Length)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Revenue)
	}
	return f, nil
}

// ExportSalesCSV 전체 판매 데이터를 UTF-8(BOM) CSV로 렌더링한다.
// BOM은 Excel에서 한글이 깨지지 않게 하기 위한 것.
func (s *SalesService) ExportSalesCSV() ([]byte, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("판매 데이터 조회 실패: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)
	if err := w.Write(salesHeaders); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.StyleCode,
			r.Color,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			r.Manufacturing,
			r.MaterialName,
			r.Fit,
			r.Length,
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatFloat(r.Revenue, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SalesTemplate 임포트용 빈 양식 생성
func SalesTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "판매데이터"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, salesHeaders)

	// 예시 행
	example := []interface{}{"STMKT00125S", "블랙", 59000, "sweater", "램스울", "오버핏", "레귤러", 120, 7080000}
	for i, v := range example {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"2", v)
	}
	return f, nil
}

// --- 소재 데이터 ---

// ParseMaterialRows 시트/CSV 행들을 소재 레코드로 변환한다
func ParseMaterialRows(rows [][]string, userID string) ([]entity.Material, *ImportResult) {
	result := &ImportResult{}
	var materials []entity.Material

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		if len(row) < 7 {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "컬럼 수 부족"})
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Reason: "소재명 누락"})
			continue
		}

		weight, _ := parseNumber(row[4])
		m := entity.Material{
			ID:          uuid.New().String(),
			Name:        name,
			Supplier:    strings.TrimSpace(row[1]),
			BlendFibers: strings.TrimSpace(row[2]),
			BlendRatios: strings.TrimSpace(row[3]),
			WeightGSM:   weight,
			Structure:   strings.TrimSpace(strings.ToLower(row[5])),
			FabricGrade: strings.TrimSpace(strings.ToUpper(row[6])),
			CreatedBy:   userID,
		}
		applyBlendShares(&m)
		materials = append(materials, m)
		result.Imported++
	}
	return materials, result
}

// ImportMaterialsXLSX 업로드된 xlsx에서 소재를 읽어 저장한다
func (s *MaterialService) ImportMaterialsXLSX(f *excelize.File, userID string) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("시트 읽기 실패: %w", err)
	}

	materials, result := ParseMaterialRows(rows, userID)
	if err := s.repo.CreateBatch(materials); err != nil {
		return nil, fmt.Errorf("소재 데이터 저장 실패: %w", err)
	}
	return result, nil
}

// ExportMaterialsXLSX 전체 소재 데이터를 xlsx로 렌더링한다
func (s *MaterialService) ExportMaterialsXLSX() (*excelize.File, error) {
	materials, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("소재 데이터 조회 실패: %w", err)
	}

	f := excelize.NewFile()
	sheet := "소재데이터"
	f.SetSheetName("Sheet1", sheet)
	writeMaterialSheet(f, sheet, materials)
	return f, nil
}

// MaterialTemplate 임포트용 빈 양식 생성
func MaterialTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "소재데이터"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, materialHeaders)

	example := []interface{}{"램스울", "대한모직", "울/나일론", "80/20", 350, "knit", "A"}
	for i, v := range example {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"2", v)
	}
	return f, nil
}

// writeMaterialSheet 백업 스냅샷과 단일 익스포트가 공유하는 시트 렌더링
func writeMaterialSheet(f *excelize.File, sheet string, materials []entity.Material) {
	writeHeaderRow(f, sheet, materialHeaders)
	for i, m := range materials {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Supplier)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.BlendFibers)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.BlendRatios)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.WeightGSM)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.Structure)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), m.FabricGrade)
	}
}

// --- 공통 헬퍼 ---

// writeHeaderRow 볼드+배경색 헤더 행
func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseNumber 천단위 콤마가 섞인 수기 입력 숫자 파싱
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// normalizeManufacturing 한글/영문 제조방식 표기를 정규화한다
func normalizeManufacturing(s string) string {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "컷앤소", "컷앤쏘", "cut&sewn", "cutsew", "cut and sewn":
		return entity.ManufacturingCutSew
	case "우븐", "woven":
		return entity.ManufacturingWoven
	case "스웨터", "니트", "sweater", "knit":
		return entity.ManufacturingSweater
	}
	return strings.TrimSpace(strings.ToLower(s))
}
