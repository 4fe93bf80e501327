package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CategoryRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns the category listing query ordered by title.
func (r *CategoryRepo) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Category{}).Order("categories.title ASC")
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Save inserts a new category or updates an existing one
func (r *CategoryRepo) Save(ctx context.Context, category *models.Category) error {
	return saveRow(r.db.WithContext(ctx), category.ID, category)
}

// Delete removes a category from the database
func (r *CategoryRepo) Delete(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", category.ID).Error
}
