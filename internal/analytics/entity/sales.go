package entity

import (
	"time"

	"gorm.io/gorm"
)

// SalesRecord 시즌 누적 판매 레코드
// 품번+컬러가 논리적 식별자이지만 유니크 제약은 걸지 않는다 (수기 입력 데이터)
type SalesRecord struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	StyleCode     string         `json:"style_code" gorm:"size:32;not null;index"`
	Color         string         `json:"color" gorm:"size:32;not null"`
	Price         float64        `json:"price" gorm:"type:decimal(15,2)"`
	Manufacturing string         `json:"manufacturing" gorm:"size:16;not null"`
	MaterialName  string         `json:"material_name" gorm:"size:64;index"`
	Fit           string         `json:"fit" gorm:"size:16"`
	Length        string         `json:"length" gorm:"size:16"`
	Quantity      int64          `json:"quantity" gorm:"not null;default:0"`
	Revenue       float64        `json:"revenue" gorm:"type:decimal(18,2);not null;default:0"`
	CreatedBy     string         `json:"created_by" gorm:"size:36"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (SalesRecord) TableName() string {
	return "sales_records"
}

// Manufacturing 제조방식
const (
	ManufacturingCutSew  = "cutsew"
	ManufacturingWoven   = "woven"
	ManufacturingSweater = "sweater"
)

// StyleInfo 품번 디코딩 결과 (비영속)
type StyleInfo struct {
	Brand    string `json:"brand"`
	Gender   string `json:"gender"`
	Item     string `json:"item"`
	Category string `json:"category"`
	Year     int    `json:"year"`
	Season   string `json:"season"`
}

// EnrichedSale 디코딩된 품번 정보가 조인된 판매 레코드
type EnrichedSale struct {
	SalesRecord
	StyleInfo
}
