package repository

import "gorm.io/gorm"

// Repositories 저장소 집합
type Repositories struct {
	Sales    *SalesRepository
	Material *MaterialRepository
	Stats    *StatsRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Sales:    NewSalesRepository(db),
		Material: NewMaterialRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
