package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

// AlbumFilters narrows the album listing. A nil Tag applies no filter.
type AlbumFilters struct {
	Tag *models.Tag
}

type AlbumRepo struct {
	db *gorm.DB
}

func NewAlbumRepo(db *gorm.DB) *AlbumRepo {
	return &AlbumRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *AlbumRepo) GetDB() *gorm.DB {
	return r.db
}

// QueryAll returns the album listing query, newest first, with filters applied.
func (r *AlbumRepo) QueryAll(ctx context.Context, filters AlbumFilters) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Album{}).
		Order("albums.created_at DESC").
		Order("albums.id DESC")
	return applyAlbumFilters(query, filters)
}

// QueryByCategory narrows QueryAll to one category.
func (r *AlbumRepo) QueryByCategory(ctx context.Context, category *models.Category) *gorm.DB {
	return r.QueryAll(ctx, AlbumFilters{}).Where("albums.category_id = ?", category.ID)
}

// QueryByArtist narrows QueryAll to the albums an artist appears on.
func (r *AlbumRepo) QueryByArtist(ctx context.Context, artist *models.Artist) *gorm.DB {
	artistAlbums := r.db.WithContext(ctx).Table("albums_artists").Select("album_id").Where("artist_id = ?", artist.ID)
	return r.QueryAll(ctx, AlbumFilters{}).Where("albums.id IN (?)", artistAlbums)
}

// WithRelations preloads everything an album listing displays.
func (r *AlbumRepo) WithRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.title ASC") }).
		Preload("Artists", func(db *gorm.DB) *gorm.DB { return db.Order("artists.name ASC") }).
		Preload("Cover")
}

func (r *AlbumRepo) CountByCategory(ctx context.Context, category *models.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("category_id = ?", category.ID).
		Distinct("id").
		Count(&count).Error
	return count, err
}

func (r *AlbumRepo) CountByArtist(ctx context.Context, artist *models.Artist) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("albums_artists").
		Where("artist_id = ?", artist.ID).
		Distinct("album_id").
		Count(&count).Error
	return count, err
}

// FindBySlug returns an album with its relations loaded.
func (r *AlbumRepo) FindBySlug(ctx context.Context, slug string) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).Scopes(r.WithRelations).Where("slug = ?", slug).First(&album).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// FindByID returns an album with its relations loaded.
func (r *AlbumRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).Scopes(r.WithRelations).Where("id = ?", id).First(&album).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// Save inserts or updates the album and replaces its tag and artist links in
// one transaction. Tags unlinked by this save that no other album uses are removed.
func (r *AlbumRepo) Save(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var previousTags []uuid.UUID
		if !album.IsNew() {
			if err := tx.Table("albums_tags").Where("album_id = ?", album.ID).Pluck("tag_id", &previousTags).Error; err != nil {
				return err
			}
		}

		tags, artists := album.Tags, album.Artists
		if err := saveRow(tx, album.ID, album); err != nil {
			return err
		}

		if err := replaceAssociation(tx, album, "Tags", tags); err != nil {
			return err
		}
		if err := replaceAssociation(tx, album, "Artists", artists); err != nil {
			return err
		}
		album.Tags, album.Artists = tags, artists

		return deleteOrphanTags(tx, previousTags)
	})
}

// Delete removes the album, its comments, its cover row and its links in one
// transaction, then removes the tags it was the last album of.
func (r *AlbumRepo) Delete(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tagIDs []uuid.UUID
		if err := tx.Table("albums_tags").Where("album_id = ?", album.ID).Pluck("tag_id", &tagIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", album.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", album.ID).Delete(&models.Cover{}).Error; err != nil {
			return err
		}
		if err := tx.Model(album).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(album).Association("Artists").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&models.Album{}, "id = ?", album.ID).Error; err != nil {
			return err
		}
		return deleteOrphanTags(tx, tagIDs)
	})
}

func applyAlbumFilters(query *gorm.DB, filters AlbumFilters) *gorm.DB {
	if filters.Tag != nil {
		query = query.Where("albums.id IN (?)",
			query.Session(&gorm.Session{NewDB: true}).Table("albums_tags").Select("album_id").Where("tag_id = ?", filters.Tag.ID))
	}
	return query
}

func replaceAssociation[T any](tx *gorm.DB, album *models.Album, name string, values []T) error {
	association := tx.Model(album).Association(name)
	if len(values) == 0 {
		return association.Clear()
	}
	return association.Replace(values)
}
