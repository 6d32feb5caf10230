package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"

	"github.com/modaworks/vesti/internal/analytics/repository"
)

const backupPrefix = "backups/"

// BackupService 판매+소재 데이터를 xlsx 스냅샷으로 오브젝트 스토리지에 보관한다.
// 원본 도구의 "매일 Excel 백업" 권고를 서버 쪽 기능으로 올린 것.
type BackupService struct {
	salesRepo    *repository.SalesRepository
	materialRepo *repository.MaterialRepository
	store        *minio.Client
	bucket       string
}

func NewBackupService(salesRepo *repository.SalesRepository, materialRepo *repository.MaterialRepository, store *minio.Client, bucket string) *BackupService {
	return &BackupService{
		salesRepo:    salesRepo,
		materialRepo: materialRepo,
		store:        store,
		bucket:       bucket,
	}
}

// BackupInfo 저장된 스냅샷 메타데이터
type BackupInfo struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// EnsureBucket 기동 시 버킷 생성 (이미 있으면 no-op)
func (s *BackupService) EnsureBucket(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("버킷 확인 실패: %w", err)
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("버킷 생성 실패: %w", err)
		}
	}
	return nil
}

// CreateSnapshot 판매/소재 두 시트를 가진 xlsx를 렌더링해 업로드한다
func (s *BackupService) CreateSnapshot(ctx context.Context) (*BackupInfo, error) {
	if s.store == nil {
		return nil, fmt.Errorf("오브젝트 스토리지가 설정되지 않았습니다")
	}

	sales, err := s.salesRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("판매 데이터 조회 실패: %w", err)
	}
	materials, err := s.materialRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("소재 데이터 조회 실패: %w", err)
	}

	f := excelize.NewFile()
	salesSheet := "판매데이터"
	f.SetSheetName("Sheet1", salesSheet)
	writeHeaderRow(f, salesSheet, salesHeaders)
	for i, r := range sales {
		row := i + 2
		f.SetCellValue(salesSheet, fmt.Sprintf("A%d", row), r.StyleCode)
		f.SetCellValue(salesSheet, fmt.Sprintf("B%d", row), r.Color)
		f.SetCellValue(salesSheet, fmt.Sprintf("C%d", row), r.Price)
		f.SetCellValue(salesSheet, fmt.Sprintf("D%d", row), r.Manufacturing)
		f.SetCellValue(salesSheet, fmt.Sprintf("E%d", row), r.MaterialName)
		f.SetCellValue(salesSheet, fmt.Sprintf("F%d", row), r.Fit)
		f.SetCellValue(salesSheet, fmt.Sprintf("G%d", row), r.Length)
		f.SetCellValue(salesSheet, fmt.Sprintf("H%d", row), r.Quantity)
		f.SetCellValue(salesSheet, fmt.Sprintf("I%d", row), r.Revenue)
	}

	materialSheet := "소재데이터"
	f.NewSheet(materialSheet)
	writeMaterialSheet(f, materialSheet, materials)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("스냅샷 렌더링 실패: %w", err)
	}

	key := fmt.Sprintf("%ssnapshot_%s.xlsx", backupPrefix, time.Now().Format("20060102_150405"))
	info, err := s.store.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return nil, fmt.Errorf("스냅샷 업로드 실패: %w", err)
	}

	return &BackupInfo{Key: key, Size: info.Size, CreatedAt: time.Now()}, nil
}

// ListSnapshots 저장된 스냅샷 목록 (최신순)
func (s *BackupService) ListSnapshots(ctx context.Context) ([]BackupInfo, error) {
	if s.store == nil {
		return nil, fmt.Errorf("오브젝트 스토리지가 설정되지 않았습니다")
	}

	var backups []BackupInfo
	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: backupPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("스냅샷 목록 조회 실패: %w", obj.Err)
		}
		backups = append(backups, BackupInfo{
			Key:       obj.Key,
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// DownloadSnapshot 스냅샷 오브젝트를 읽어 스트림으로 반환한다
func (s *BackupService) DownloadSnapshot(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.store == nil {
		return nil, fmt.Errorf("오브젝트 스토리지가 설정되지 않았습니다")
	}
	obj, err := s.store.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("스냅샷 다운로드 실패: %w", err)
	}
	return obj, nil
}
