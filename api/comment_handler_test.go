package api

import (
	"net/http"
	"testing"

	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentEditIsReservedToAuthor(t *testing.T) {
	s := newTestServer(t, nil)
	admin := dbtest.NewUser(t, s.db, "admin", true)
	author := dbtest.NewUser(t, s.db, "author", false)
	other := dbtest.NewUser(t, s.db, "other", false)
	category := dbtest.NewCategory(t, s.db, "Blues")
	album := dbtest.NewAlbum(t, s.db, "Delta Nights", category, admin)
	comment := dbtest.NewComment(t, s.db, album, author, 3)

	path := "/comments/" + comment.ID.String()
	edit := CommentInput{Description: "Better on a second listen", Rating: 4}

	rec := s.do(http.MethodPut, path, edit, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, path, edit, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, path, edit, admin)
	assert.Equal(t, http.StatusForbidden, rec.Code, "administrators delete but do not edit")

	rec = s.do(http.MethodPut, path, edit, author)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Comment](t, rec)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Better on a second listen", updated.Description)
}

func TestCommentDeleteByAuthorOrAdministrator(t *testing.T) {
	s := newTestServer(t, nil)
	admin := dbtest.NewUser(t, s.db, "admin", true)
	author := dbtest.NewUser(t, s.db, "author", false)
	other := dbtest.NewUser(t, s.db, "other", false)
	category := dbtest.NewCategory(t, s.db, "Blues")
	album := dbtest.NewAlbum(t, s.db, "Delta Nights", category, admin)
	first := dbtest.NewComment(t, s.db, album, author, 3)
	second := dbtest.NewComment(t, s.db, album, author, 5)

	rec := s.do(http.MethodDelete, "/comments/"+first.ID.String(), nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/comments/"+first.ID.String(), nil, author)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/comments/"+second.ID.String(), nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/comments/"+second.ID.String(), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/comments/not-a-uuid", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentListingNewestFirst(t *testing.T) {
	s := newTestServer(t, nil)
	admin := dbtest.NewUser(t, s.db, "admin", true)
	category := dbtest.NewCategory(t, s.db, "Blues")
	album := dbtest.NewAlbum(t, s.db, "Delta Nights", category, admin)
	for i := 0; i < 11; i++ {
		dbtest.NewComment(t, s.db, album, admin, 1+i%5)
	}

	rec := s.do(http.MethodGet, "/comments", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[database.Page[models.Comment]](t, rec)
	assert.EqualValues(t, 11, page.Total)
	require.Len(t, page.Items, 10)
	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
	}
}
