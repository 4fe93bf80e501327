package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CommentRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns the comment listing query, newest first.
func (r *CommentRepo) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Order("comments.created_at DESC").
		Order("comments.id DESC")
}

// QueryByAlbum narrows QueryAll to the comments of one album.
func (r *CommentRepo) QueryByAlbum(ctx context.Context, album *models.Album) *gorm.DB {
	return r.QueryAll(ctx).Where("comments.album_id = ?", album.ID)
}

// WithRelations preloads the album and the author of each comment.
func (r *CommentRepo) WithRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Album").Preload("Author")
}

func (r *CommentRepo) CountByAlbum(ctx context.Context, album *models.Album) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("album_id = ?", album.ID).
		Distinct("id").
		Count(&count).Error
	return count, err
}

// AverageRatingByAlbum returns AVG(rating) of the album's comments. The result
// is not valid when the album has no comments.
func (r *CommentRepo) AverageRatingByAlbum(ctx context.Context, album *models.Album) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("AVG(rating)").
		Where("album_id = ?", album.ID).
		Row()
	err := row.Scan(&avg)
	return avg, err
}

func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Scopes(r.WithRelations).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Save inserts a new comment or updates an existing one
func (r *CommentRepo) Save(ctx context.Context, comment *models.Comment) error {
	return saveRow(r.db.WithContext(ctx), comment.ID, comment)
}

// Delete removes a comment from the database
func (r *CommentRepo) Delete(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", comment.ID).Error
}
