package services

import (
	"context"
	"testing"

	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCanBeDeletedLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := dbtest.NewUser(t, f.db, "admin", true)
	jazz := dbtest.NewCategory(t, f.db, "Jazz")
	rock := dbtest.NewCategory(t, f.db, "Rock")

	assert.True(t, f.categories.CanBeDeleted(ctx, jazz))

	album := dbtest.NewAlbum(t, f.db, "Kind of Blue", jazz, author)
	assert.False(t, f.categories.CanBeDeleted(ctx, jazz))

	err := f.categories.Delete(ctx, jazz)
	assert.ErrorIs(t, err, errs.ErrInUse)
	_, err = f.categories.FindBySlug(ctx, "jazz")
	require.NoError(t, err)

	album.CategoryID = rock.ID
	require.NoError(t, f.albums.Save(ctx, album))
	assert.True(t, f.categories.CanBeDeleted(ctx, jazz))
	require.NoError(t, f.categories.Delete(ctx, jazz))
}

func TestCategoryCanBeDeletedFailsClosed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	category := dbtest.NewCategory(t, f.db, "Jazz")

	require.NoError(t, f.db.AlbumRepo().GetDB().Exec("DROP TABLE albums_tags").Error)
	require.NoError(t, f.db.AlbumRepo().GetDB().Exec("DROP TABLE albums_artists").Error)
	require.NoError(t, f.db.AlbumRepo().GetDB().Exec("DROP TABLE covers").Error)
	require.NoError(t, f.db.AlbumRepo().GetDB().Exec("DROP TABLE comments").Error)
	require.NoError(t, f.db.AlbumRepo().GetDB().Exec("DROP TABLE albums").Error)

	assert.False(t, f.categories.CanBeDeleted(ctx, category))
}

func TestCategoriesOrderedByTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dbtest.NewCategory(t, f.db, "Rock")
	dbtest.NewCategory(t, f.db, "Blues")

	page, err := f.categories.GetPaginatedList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Blues", page.Items[0].Title)
}

func TestArtistCanBeDeletedLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := dbtest.NewUser(t, f.db, "admin", true)
	category := dbtest.NewCategory(t, f.db, "Jazz")
	artist := dbtest.NewArtist(t, f.db, "Coltrane")

	assert.True(t, f.artists.CanBeDeleted(ctx, artist))

	album := dbtest.NewAlbum(t, f.db, "Blue Train", category, author)
	album.AddArtist(*artist)
	require.NoError(t, f.albums.Save(ctx, album))
	assert.False(t, f.artists.CanBeDeleted(ctx, artist))
	assert.ErrorIs(t, f.artists.Delete(ctx, artist), errs.ErrInUse)

	page, err := f.albums.GetPaginatedListByArtist(ctx, 1, artist)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	album.RemoveArtist(*artist)
	require.NoError(t, f.albums.Save(ctx, album))
	assert.True(t, f.artists.CanBeDeleted(ctx, artist))
	require.NoError(t, f.artists.Delete(ctx, artist))
}
