package repository

import (
	"github.com/modaworks/vesti/internal/analytics/entity"
	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) Create(record *entity.SalesRecord) error {
	return r.db.Create(record).Error
}

// CreateBatch Excel/CSV 일괄 임포트용
func (r *SalesRepository) CreateBatch(records []entity.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.CreateInBatches(records, 200).Error
}

func (r *SalesRepository) GetByID(id string) (*entity.SalesRecord, error) {
	var record entity.SalesRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	return &record, err
}

func (r *SalesRepository) Update(record *entity.SalesRecord) error {
	return r.db.Save(record).Error
}

func (r *SalesRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.SalesRecord{}).Error
}

// DeleteAll 전체 삭제 (데이터 관리 탭의 전체 삭제 버튼)
func (r *SalesRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&entity.SalesRecord{}).Error
}

type SalesListParams struct {
	Manufacturing string
	MaterialName  string
	Keyword       string
	Page          int
	Size          int
}

func (r *SalesRepository) List(params SalesListParams) ([]entity.SalesRecord, int64, error) {
	query := r.db.Model(&entity.SalesRecord{})
	if params.Manufacturing != "" {
		query = query.Where("manufacturing = ?", params.Manufacturing)
	}
	if params.MaterialName != "" {
		query = query.Where("material_name = ?", params.MaterialName)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("style_code ILIKE ? OR color ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var records []entity.SalesRecord
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&records).Error
	return records, total, err
}

// ListAll 대시보드/랭킹/예측 집계용 전체 로드.
// 수기 입력 데이터라 행 수가 작다는 전제 하에 메모리에서 조인한다.
func (r *SalesRepository) ListAll() ([]entity.SalesRecord, error) {
	var records []entity.SalesRecord
	err := r.db.Order("created_at").Find(&records).Error
	return records, err
}

func (r *SalesRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.SalesRecord{}).Count(&total).Error
	return total, err
}
