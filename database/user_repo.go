package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *UserRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns the user listing query ordered by email.
func (r *UserRepo) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).Order("users.email ASC")
}

func (r *UserRepo) FindBySlug(ctx context.Context, slug string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpgradePassword stores a new password hash for user
func (r *UserRepo) UpgradePassword(ctx context.Context, user *models.User, hash string) error {
	user.Password = hash
	return r.Save(ctx, user)
}

// Save inserts a new user or updates an existing one
func (r *UserRepo) Save(ctx context.Context, user *models.User) error {
	return saveRow(r.db.WithContext(ctx), user.ID, user)
}

// Delete removes a user from the database
func (r *UserRepo) Delete(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", user.ID).Error
}
