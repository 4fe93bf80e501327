package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResolveTitles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	existing := dbtest.NewTag(t, f.db, "jazz")

	tags, err := f.tags.ResolveTitles(ctx, " jazz ,fusion, jazz, ,Fusion")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, existing.ID, tags[0].ID)
	assert.Equal(t, "fusion", tags[1].Title)
	assert.Equal(t, uuid.Nil, tags[1].ID, "unknown titles are not saved yet")

	_, err = f.tags.FindOneByTitle(ctx, "fusion")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := f.tags.FindOneByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "jazz", found.Title)

	empty, err := f.tags.ResolveTitles(ctx, " , ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJoinTitles(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "", f.tags.JoinTitles(nil))
	assert.Equal(t, "a, b", f.tags.JoinTitles([]models.Tag{{Title: "a"}, {Title: "b"}}))
}
