// Package dbtest opens throwaway sqlite databases and seeds fixtures for tests.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the clear-text password of every user created by NewUser.
const Password = "secret-password"

// Open returns a migrated database stored in a temporary directory.
func Open(t testing.TB) database.Database {
	t.Helper()
	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "reviews.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database.New(db)
}

// NewUser saves a user named name. admin adds ROLE_ADMIN.
func NewUser(t testing.TB, d database.Database, name string, admin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:    name + "@example.com",
		Username: name,
		Password: string(hash),
	}
	if admin {
		user.Roles = []string{models.RoleAdmin}
	}
	require.NoError(t, d.UserRepo().Save(context.Background(), user))
	return user
}

func NewCategory(t testing.TB, d database.Database, title string) *models.Category {
	t.Helper()
	category := &models.Category{Title: title}
	require.NoError(t, d.CategoryRepo().Save(context.Background(), category))
	return category
}

func NewArtist(t testing.TB, d database.Database, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{Name: name}
	require.NoError(t, d.ArtistRepo().Save(context.Background(), artist))
	return artist
}

func NewTag(t testing.TB, d database.Database, title string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Title: title}
	require.NoError(t, d.TagRepo().Save(context.Background(), tag))
	return tag
}

// NewAlbum saves a valid album in category written by author, linked to tags.
func NewAlbum(t testing.TB, d database.Database, title string, category *models.Category, author *models.User, tags ...*models.Tag) *models.Album {
	t.Helper()
	album := &models.Album{
		Title:       title,
		Year:        1999,
		Description: fmt.Sprintf("Review of %s", title),
		Mark:        4,
		CategoryID:  category.ID,
		AuthorID:    author.ID,
	}
	for _, tag := range tags {
		album.AddTag(*tag)
	}
	require.NoError(t, d.AlbumRepo().Save(context.Background(), album))
	return album
}

func NewComment(t testing.TB, d database.Database, album *models.Album, author *models.User, rating int) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Description: "Worth a listen",
		Rating:      rating,
		AlbumID:     album.ID,
		AuthorID:    author.ID,
	}
	require.NoError(t, d.CommentRepo().Save(context.Background(), comment))
	return comment
}
