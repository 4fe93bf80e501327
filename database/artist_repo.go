package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type ArtistRepo struct {
	db *gorm.DB
}

func NewArtistRepo(db *gorm.DB) *ArtistRepo {
	return &ArtistRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ArtistRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns the artist listing query ordered by name.
func (r *ArtistRepo) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Artist{}).Order("artists.name ASC")
}

func (r *ArtistRepo) FindBySlug(ctx context.Context, slug string) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *ArtistRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindByIDs returns the artists with the given ids, ordered by name. Unknown
// ids are skipped.
func (r *ArtistRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Artist, error) {
	artists := []models.Artist{}
	if len(ids) == 0 {
		return artists, nil
	}
	err := r.QueryAll(ctx).Where("id IN ?", ids).Find(&artists).Error
	return artists, err
}

// Save inserts a new artist or updates an existing one
func (r *ArtistRepo) Save(ctx context.Context, artist *models.Artist) error {
	return saveRow(r.db.WithContext(ctx), artist.ID, artist)
}

// Delete removes an artist from the database
func (r *ArtistRepo) Delete(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Delete(&models.Artist{}, "id = ?", artist.ID).Error
}
