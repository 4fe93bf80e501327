package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TagRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns every tag ordered by title.
func (r *TagRepo) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Tag{}).Order("tags.title ASC")
}

func (r *TagRepo) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) FindByTitle(ctx context.Context, title string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Save inserts a new tag or updates an existing one
func (r *TagRepo) Save(ctx context.Context, tag *models.Tag) error {
	return saveRow(r.db.WithContext(ctx), tag.ID, tag)
}

// Delete removes a tag and its album links
func (r *TagRepo) Delete(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM albums_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", tag.ID).Error
	})
}
