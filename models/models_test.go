package models

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "models.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Kind of Blue", "kind-of-blue"},
		{"Motörhead", "motorhead"},
		{"  Hello,   World!  ", "hello-world"},
		{"Sigur Rós ( )", "sigur-ros"},
		{"", "n-a"},
		{"!!!", "n-a"},
		{"AC/DC", "ac-dc"},
		{"already-a-slug", "already-a-slug"},
		{"Beyoncé & Jay-Z 2018", "beyonce-jay-z-2018"},
		{"--leading-trailing--", "leading-trailing"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestUserGetRolesAlwaysIncludesBaseRole(t *testing.T) {
	u := &User{}
	assert.Equal(t, []string{RoleUser}, u.GetRoles())
	assert.False(t, u.IsAdmin())

	u.Roles = []string{RoleAdmin, RoleUser}
	assert.Equal(t, []string{RoleAdmin, RoleUser}, u.GetRoles())
	assert.True(t, u.IsAdmin())
}

func TestAlbumTagsAreASet(t *testing.T) {
	tag := Tag{ID: uuid.New(), Title: "jazz"}
	a := &Album{}

	a.AddTag(tag)
	a.AddTag(tag)
	assert.Len(t, a.Tags, 1)

	a.RemoveTag(Tag{ID: uuid.New(), Title: "rock"})
	assert.Len(t, a.Tags, 1)

	a.RemoveTag(tag)
	assert.Empty(t, a.Tags)
}

func TestAlbumArtistsAreASet(t *testing.T) {
	artist := Artist{ID: uuid.New(), Name: "Miles Davis"}
	a := &Album{}

	a.AddArtist(artist)
	a.AddArtist(artist)
	assert.Len(t, a.Artists, 1)

	a.RemoveArtist(Artist{ID: uuid.New()})
	assert.Len(t, a.Artists, 1)
}

func TestValidateAlbumBounds(t *testing.T) {
	valid := Album{
		Title:       "Kind of Blue",
		Year:        1959,
		Description: "Modal jazz.",
		Mark:        5,
		CategoryID:  uuid.New(),
		AuthorID:    uuid.New(),
	}
	require.NoError(t, Validate(&valid))

	tests := []struct {
		name  string
		field string
		edit  func(a *Album)
	}{
		{"mark too low", "mark", func(a *Album) { a.Mark = 0 }},
		{"mark too high", "mark", func(a *Album) { a.Mark = 6 }},
		{"year zero", "year", func(a *Album) { a.Year = 0 }},
		{"short title", "title", func(a *Album) { a.Title = "ab" }},
		{"missing category", "categoryId", func(a *Album) { a.CategoryID = uuid.Nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.edit(&a)
			err := Validate(&a)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestValidateCommentRating(t *testing.T) {
	c := Comment{Description: "Great record", Rating: 6, AlbumID: uuid.New(), AuthorID: uuid.New()}
	assert.Error(t, Validate(&c))
	c.Rating = 1
	assert.NoError(t, Validate(&c))
}

func TestUniqueSlugOnSave(t *testing.T) {
	db := openTestDB(t)

	first := &Category{Title: "Rock Music"}
	second := &Category{Title: "Rock music!"}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	assert.Equal(t, "rock-music", first.Slug)
	assert.Equal(t, "rock-music-2", second.Slug)
	assert.NotEqual(t, uuid.Nil, first.ID)

	// re-saving keeps the slug of the row itself
	first.Description = "Guitars"
	require.NoError(t, db.Save(first).Error)
	assert.Equal(t, "rock-music", first.Slug)
}

func TestSaveRejectsInvalidEntity(t *testing.T) {
	db := openTestDB(t)

	err := db.Create(&Category{Title: "ab"}).Error
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches([]string{"id", "title", "legacy", "extra"}, []string{"id", "title"})
	assert.Equal(t, []string{"extra", "legacy"}, got)
}
