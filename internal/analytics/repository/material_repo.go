package repository

import (
	"github.com/modaworks/vesti/internal/analytics/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) CreateBatch(materials []entity.Material) error {
	if len(materials) == 0 {
		return nil
	}
	return r.db.CreateInBatches(materials, 200).Error
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("id = ?", id).First(&m).Error
	return &m, err
}

// GetByName 판매 레코드의 material_name과 best-effort 문자열 매칭
func (r *MaterialRepository) GetByName(name string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("name = ?", name).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Material{}).Error
}

func (r *MaterialRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&entity.Material{}).Error
}

type MaterialListParams struct {
	Structure string
	Supplier  string
	Keyword   string
	Page      int
	Size      int
}

func (r *MaterialRepository) List(params MaterialListParams) ([]entity.Material, int64, error) {
	query := r.db.Model(&entity.Material{})
	if params.Structure != "" {
		query = query.Where("structure = ?", params.Structure)
	}
	if params.Supplier != "" {
		query = query.Where("supplier = ?", params.Supplier)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR supplier ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var materials []entity.Material
	err := query.Order("name").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) ListAll() ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.Order("name").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Material{}).Count(&total).Error
	return total, err
}
