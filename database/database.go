package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db           *gorm.DB
	albumRepo    *AlbumRepo
	artistRepo   *ArtistRepo
	categoryRepo *CategoryRepo
	commentRepo  *CommentRepo
	coverRepo    *CoverRepo
	tagRepo      *TagRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		albumRepo:    NewAlbumRepo(db),
		artistRepo:   NewArtistRepo(db),
		categoryRepo: NewCategoryRepo(db),
		commentRepo:  NewCommentRepo(db),
		coverRepo:    NewCoverRepo(db),
		tagRepo:      NewTagRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AlbumRepo() *AlbumRepo {
	return d.albumRepo
}

func (d Database) ArtistRepo() *ArtistRepo {
	return d.artistRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) CoverRepo() *CoverRepo {
	return d.coverRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema of every entity.
func (d Database) Migrate() error {
	return models.Migrate(d.db)
}

// Ping checks that the primary connection answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
