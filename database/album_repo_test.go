package database_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPaginateAlbums(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Jazz")
	for i := 0; i < 20; i++ {
		dbtest.NewAlbum(t, d, fmt.Sprintf("Album %02d", i), category, author)
	}

	repo := d.AlbumRepo()

	first, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), 1, database.PaginatorItemsPerPage, repo.WithRelations)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.EqualValues(t, 20, first.Total)
	assert.Equal(t, 2, first.PageCount)
	assert.True(t, first.HasNext())
	assert.Equal(t, "Album 19", first.Items[0].Title)
	require.NotNil(t, first.Items[0].Category)
	assert.Equal(t, "Jazz", first.Items[0].Category.Title)

	second, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), 2, database.PaginatorItemsPerPage)
	require.NoError(t, err)
	assert.Len(t, second.Items, 10)
	assert.False(t, second.HasNext())

	beyond, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), 3, database.PaginatorItemsPerPage)
	require.NoError(t, err)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)

	huge, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), math.MaxInt/10+2, database.PaginatorItemsPerPage)
	require.NoError(t, err)
	assert.Empty(t, huge.Items)
	assert.Equal(t, math.MaxInt/10+2, huge.Page)

	clamped, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Len(t, clamped.Items, 10)
}

func TestTagFilterKeepsUntaggedAlbumsOutOfResult(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Rock")
	live := dbtest.NewTag(t, d, "live")
	dbtest.NewAlbum(t, d, "Tagged", category, author, live)
	dbtest.NewAlbum(t, d, "Untagged", category, author)

	repo := d.AlbumRepo()

	all, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{}), 1, 10)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	tagged, err := database.Paginate[models.Album](repo.QueryAll(ctx, database.AlbumFilters{Tag: live}), 1, 10, repo.WithRelations)
	require.NoError(t, err)
	require.Len(t, tagged.Items, 1)
	assert.Equal(t, "Tagged", tagged.Items[0].Title)
	assert.Len(t, tagged.Items[0].Tags, 1)
}

func TestQueryAndCountByCategoryAndArtist(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	jazz := dbtest.NewCategory(t, d, "Jazz")
	rock := dbtest.NewCategory(t, d, "Rock")
	miles := dbtest.NewArtist(t, d, "Miles Davis")

	album := dbtest.NewAlbum(t, d, "Kind of Blue", jazz, author)
	album.AddArtist(*miles)
	require.NoError(t, d.AlbumRepo().Save(ctx, album))
	dbtest.NewAlbum(t, d, "Paranoid", rock, author)

	repo := d.AlbumRepo()

	count, err := repo.CountByCategory(ctx, jazz)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountByArtist(ctx, miles)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	page, err := database.Paginate[models.Album](repo.QueryByArtist(ctx, miles), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, album.ID, page.Items[0].ID)

	page, err = database.Paginate[models.Album](repo.QueryByCategory(ctx, rock), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Paranoid", page.Items[0].Title)
}

func TestSaveThenFetchKeepsAttributes(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Jazz")
	saved := dbtest.NewAlbum(t, d, "A Love Supreme", category, author)

	found, err := d.AlbumRepo().FindBySlug(ctx, "a-love-supreme")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, saved.Title, found.Title)
	assert.Equal(t, saved.Year, found.Year)
	assert.Equal(t, saved.Description, found.Description)
	assert.Equal(t, saved.Mark, found.Mark)
	assert.Equal(t, saved.Slug, found.Slug)
	assert.True(t, saved.CreatedAt.Equal(found.CreatedAt))
	assert.True(t, saved.UpdatedAt.Equal(found.UpdatedAt))

	createdAt := found.CreatedAt
	found.Title = "A Love Supreme (Deluxe)"
	require.NoError(t, d.AlbumRepo().Save(ctx, found))

	again, err := d.AlbumRepo().FindByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "a-love-supreme-deluxe", again.Slug)
	assert.True(t, createdAt.Equal(again.CreatedAt))
}

func TestSaveRejectsOutOfRangeMark(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Jazz")

	album := &models.Album{Title: "Broken", Year: 2001, Description: "Nope", Mark: 6, CategoryID: category.ID, AuthorID: author.ID}
	require.Error(t, d.AlbumRepo().Save(ctx, album))

	album.Mark = 5
	album.Year = 0
	require.Error(t, d.AlbumRepo().Save(ctx, album))

	var count int64
	require.NoError(t, d.AlbumRepo().GetDB().Model(&models.Album{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAlbumTagsAndOrphanCleanup(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Jazz")
	shared := dbtest.NewTag(t, d, "modal")
	single := dbtest.NewTag(t, d, "cool")

	first := dbtest.NewAlbum(t, d, "Kind of Blue", category, author, shared, single)
	dbtest.NewAlbum(t, d, "Milestones", category, author, shared)

	first.AddTag(*shared)
	require.NoError(t, d.AlbumRepo().Save(ctx, first))
	reloaded, err := d.AlbumRepo().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Tags, 2)

	reloaded.RemoveTag(*single)
	reloaded.RemoveTag(*shared)
	require.NoError(t, d.AlbumRepo().Save(ctx, reloaded))

	_, err = d.TagRepo().FindByID(ctx, single.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = d.TagRepo().FindByID(ctx, shared.ID)
	assert.NoError(t, err)
}

func TestDeleteAlbumRemovesCommentsCoverAndLinks(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	author := dbtest.NewUser(t, d, "reviewer", true)
	category := dbtest.NewCategory(t, d, "Jazz")
	tag := dbtest.NewTag(t, d, "bebop")
	album := dbtest.NewAlbum(t, d, "Bird", category, author, tag)
	dbtest.NewComment(t, d, album, author, 5)
	dbtest.NewComment(t, d, album, author, 3)
	require.NoError(t, d.CoverRepo().Save(ctx, &models.Cover{AlbumID: album.ID, Filename: "bird.png"}))

	require.NoError(t, d.AlbumRepo().Delete(ctx, album))

	count, err := d.CommentRepo().CountByAlbum(ctx, album)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = d.CoverRepo().FindByAlbum(ctx, album.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = d.TagRepo().FindByID(ctx, tag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = d.AlbumRepo().FindByID(ctx, album.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
