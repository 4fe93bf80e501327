package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type CoverRepo struct {
	db *gorm.DB
}

func NewCoverRepo(db *gorm.DB) *CoverRepo {
	return &CoverRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CoverRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByAlbum returns the cover of an album.
func (r *CoverRepo) FindByAlbum(ctx context.Context, albumID uuid.UUID) (*models.Cover, error) {
	var cover models.Cover
	if err := r.db.WithContext(ctx).Where("album_id = ?", albumID).First(&cover).Error; err != nil {
		return nil, err
	}
	return &cover, nil
}

// Save inserts a new cover or updates an existing one
func (r *CoverRepo) Save(ctx context.Context, cover *models.Cover) error {
	return saveRow(r.db.WithContext(ctx), cover.ID, cover)
}

// Delete removes a cover row
func (r *CoverRepo) Delete(ctx context.Context, cover *models.Cover) error {
	return r.db.WithContext(ctx).Delete(&models.Cover{}, "id = ?", cover.ID).Error
}
