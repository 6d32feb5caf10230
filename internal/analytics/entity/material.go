package entity

import (
	"time"

	"gorm.io/gorm"
)

// Material 소재 마스터
// BlendFibers/BlendRatios는 수기 입력 문자열 그대로 저장하고
// CottonPct/SyntheticPct는 저장 시점에 혼용율 파서로 역정규화한다
type Material struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	Name         string         `json:"name" gorm:"size:64;not null;uniqueIndex"`
	Supplier     string         `json:"supplier" gorm:"size:64"`
	BlendFibers  string         `json:"blend_fibers" gorm:"size:128"`
	BlendRatios  string         `json:"blend_ratios" gorm:"size:64"`
	WeightGSM    float64        `json:"weight_gsm" gorm:"type:decimal(8,2)"`
	Structure    string         `json:"structure" gorm:"size:16"`
	CottonPct    float64        `json:"cotton_pct" gorm:"type:decimal(5,2)"`
	SyntheticPct float64        `json:"synthetic_pct" gorm:"type:decimal(5,2)"`
	FabricGrade  string         `json:"fabric_grade" gorm:"size:8"`
	CreatedBy    string         `json:"created_by" gorm:"size:36"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Material) TableName() string {
	return "materials"
}

// Structure 조직
const (
	StructureKnit  = "knit"
	StructureWoven = "woven"
)

// FabricGrade 원단 등급
const (
	FabricGradeA = "A"
	FabricGradeB = "B"
	FabricGradeC = "C"
)
