package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// FileRepository implements the file repository interface using GORM
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *entities.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

// FindByID finds a file owned by userID
func (r *FileRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.File, error) {
	var file entities.File
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to find file by ID: %w", err)
	}
	return &file, nil
}
