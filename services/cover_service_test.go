package services

import (
	"context"
	"testing"

	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverUploadCreatesThenReplaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := dbtest.NewUser(t, f.db, "admin", true)
	category := dbtest.NewCategory(t, f.db, "Jazz")
	album := dbtest.NewAlbum(t, f.db, "Maiden Voyage", category, admin)

	first, err := f.covers.Upload(ctx, image(pngHeader, 64), album)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, first.Filename)
	assert.Equal(t, "/covers/"+first.Filename, f.covers.URL(first))
	oldName := first.Filename

	second, err := f.covers.Upload(ctx, image(jpegHeader, 64), album)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Regexp(t, `\.jpg$`, second.Filename)
	assert.False(t, f.storage.has(oldName))
	assert.True(t, f.storage.has(second.Filename))

	stored, err := f.db.CoverRepo().FindByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Filename, stored.Filename)
}

func TestCoverRejectsUnsupportedUploads(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := dbtest.NewUser(t, f.db, "admin", true)
	category := dbtest.NewCategory(t, f.db, "Jazz")
	album := dbtest.NewAlbum(t, f.db, "Maiden Voyage", category, admin)

	_, err := f.covers.Create(ctx, image(gifHeader, 64), album)
	assert.ErrorIs(t, err, errs.ErrUnsupportedImage)

	_, err = f.covers.Create(ctx, image(pngHeader, MaxCoverSize+1), album)
	assert.ErrorIs(t, err, errs.ErrMaxBodySizeExceeded)

	assert.Empty(t, f.storage.files)
}

func TestCoverDeleteToleratesStorageFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := dbtest.NewUser(t, f.db, "admin", true)
	category := dbtest.NewCategory(t, f.db, "Jazz")
	album := dbtest.NewAlbum(t, f.db, "Maiden Voyage", category, admin)

	cover, err := f.covers.Create(ctx, image(pngHeader, 64), album)
	require.NoError(t, err)

	f.storage.failRemove = true
	require.NoError(t, f.covers.Delete(ctx, cover))
	_, err = f.db.CoverRepo().FindByAlbum(ctx, album.ID)
	assert.Error(t, err)
}
