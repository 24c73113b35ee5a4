package repository

import (
	"errors"
	"fmt"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileRepository is the metadata store for file records. Soft-deleted rows
// are excluded from every read; only admin aggregates look past the default
// scope, and they do so explicitly.
type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(file *models.File) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

// GetByID returns the active record or nil. Soft-deleted files are invisible
// here by the model's DeletedAt scope.
func (r *FileRepository) GetByID(id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.db.First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) ListByOwner(ownerID uuid.UUID, folder string, offset, limit int) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("owner_id = ? AND folder = ?", ownerID, folder).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&files).Error
	return files, err
}

// ListAll returns active files across all owners, newest first, optionally
// filtered by content-type substring.
func (r *FileRepository) ListAll(typeFilter string, offset, limit int) ([]models.File, error) {
	query := r.db.Model(&models.File{})
	if typeFilter != "" {
		query = query.Where("content_type LIKE ?", "%"+typeFilter+"%")
	}

	var files []models.File
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&files).Error
	return files, err
}

// SoftDelete marks the file deleted. Idempotent: a second call affects no rows.
func (r *FileRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&models.File{}, "id = ?", id).Error
}

func (r *FileRepository) UpdateName(id uuid.UUID, newName string) error {
	return r.db.Model(&models.File{}).Where("id = ?", id).Update("original_name", newName).Error
}
