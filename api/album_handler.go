package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxCoverRequestSize leaves room for the multipart envelope around the image.
const maxCoverRequestSize = services.MaxCoverSize + 1<<20

type albumHandler struct {
	responder Responder
	logger    zerolog.Logger
	albums    *services.AlbumService
	comments  *services.CommentService
	covers    *services.CoverService
	access    *security.AccessDecider
}

func newAlbumHandler(albums *services.AlbumService, comments *services.CommentService, covers *services.CoverService, access *security.AccessDecider) albumHandler {
	logger := log.With().Str("handlerName", "albumHandler").Logger()

	return albumHandler{
		responder: NewResponder(logger),
		logger:    logger,
		albums:    albums,
		comments:  comments,
		covers:    covers,
		access:    access,
	}
}

// albumSummaries attaches cover URLs to a page of albums.
func albumSummaries(covers *services.CoverService, page database.Page[models.Album]) database.Page[AlbumSummary] {
	out := database.Page[AlbumSummary]{
		Items:     make([]AlbumSummary, 0, len(page.Items)),
		Page:      page.Page,
		PerPage:   page.PerPage,
		Total:     page.Total,
		PageCount: page.PageCount,
	}
	for _, album := range page.Items {
		out.Items = append(out.Items, AlbumSummary{Album: album, CoverURL: covers.URL(album.Cover)})
	}
	return out
}

func (h albumHandler) details(ctx context.Context, album *models.Album) AlbumDetails {
	return AlbumDetails{
		Album:         *album,
		CommentCount:  h.albums.CountComments(ctx, album),
		AverageRating: h.albums.GetAverageUserRating(ctx, album),
		CoverURL:      h.covers.URL(album.Cover),
	}
}

func (h albumHandler) findAlbum(r *http.Request) (*models.Album, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return nil, errs.NewBadRequestError("missing slug")
	}
	album, err := h.albums.FindBySlug(r.Context(), slug)
	if err != nil {
		return nil, wrapDatabaseError("find", "album", err)
	}
	return album, nil
}

// listAlbums lists albums newest first
// @Summary List albums
// @Description Lists albums newest first, optionally only those carrying a tag
// @Tags Albums
// @Produce json
// @Param page query int false "Page number, values below 1 give the first page"
// @Param tag query string false "Tag slug"
// @Success 200 {object} database.Page[AlbumSummary] "Page of albums"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /albums [get]
func (h albumHandler) listAlbums() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := map[string]string{"tag_slug": r.URL.Query().Get("tag")}

		page, err := h.albums.GetPaginatedList(r.Context(), pageParam(r), filters)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}

		h.responder.WriteJSON(w, albumSummaries(h.covers, page))
	}
}

// getAlbum shows one album
// @Summary Get album
// @Description Shows an album with its comment count and average user rating
// @Tags Albums
// @Produce json
// @Param slug path string true "Album slug"
// @Success 200 {object} AlbumDetails "Album details"
// @Failure 404 {object} ErrorResponse "Not Found - Album not found"
// @Router /albums/{slug} [get]
func (h albumHandler) getAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, h.details(r.Context(), album))
	}
}

// createAlbum creates an album authored by the current user
// @Summary Create album
// @Tags Albums
// @Accept json
// @Produce json
// @Param album body services.AlbumInput true "Album data"
// @Success 201 {object} AlbumDetails "Created album"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid album data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden - Administrators only"
// @Router /albums [post]
func (h albumHandler) createAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.AlbumInput
		if err := decodeJSON(w, r, "album", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author := ctxGetUser(r.Context())
		album := &models.Album{Author: author, AuthorID: author.ID}
		if err := h.albums.Apply(r.Context(), album, input); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("prepare", "album", err))
			return
		}
		if err := h.albums.Save(r.Context(), album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "album", err))
			return
		}

		h.logger.Info().Str("album", album.Slug).Str("author", author.Slug).Msg("album created")
		h.responder.WriteCreated(w, h.details(r.Context(), album))
	}
}

// updateAlbum edits an album
// @Summary Update album
// @Tags Albums
// @Accept json
// @Produce json
// @Param slug path string true "Album slug"
// @Param album body services.AlbumInput true "Album data"
// @Success 200 {object} AlbumDetails "Updated album"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid album data"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found - Album not found"
// @Router /albums/{slug} [put]
func (h albumHandler) updateAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeEdit, album); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.AlbumInput
		if err := decodeJSON(w, r, "album", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.albums.Apply(r.Context(), album, input); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("prepare", "album", err))
			return
		}
		if err := h.albums.Save(r.Context(), album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "album", err))
			return
		}

		h.responder.WriteJSON(w, h.details(r.Context(), album))
	}
}

// deleteAlbum deletes an album with its comments and cover
// @Summary Delete album
// @Tags Albums
// @Produce json
// @Param slug path string true "Album slug"
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found - Album not found"
// @Router /albums/{slug} [delete]
func (h albumHandler) deleteAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeDelete, album); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.albums.Delete(r.Context(), album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "album", err))
			return
		}

		h.logger.Info().Str("album", album.Slug).Msg("album deleted")
		h.responder.WriteDeleted(w, "album")
	}
}

// uploadCover sets or replaces the cover image of an album
// @Summary Upload cover
// @Description Accepts a jpeg, png or webp image of at most 5 MiB in the multipart field "file"
// @Tags Albums
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Album slug"
// @Param file formData file true "Cover image"
// @Success 200 {object} AlbumDetails "Album with its new cover"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing file"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Failure 415 {object} ErrorResponse "Unsupported Media Type"
// @Router /albums/{slug}/cover [put]
func (h albumHandler) uploadCover() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeEdit, album); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "multipart/form-data") {
			h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(contentType, []string{"multipart/form-data"}))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxCoverRequestSize)
		file, _, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxCoverSize))
				return
			}
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		if _, err := h.covers.Upload(r.Context(), file, album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upload", "cover", err))
			return
		}

		h.responder.WriteJSON(w, h.details(r.Context(), album))
	}
}

// listAlbumComments lists the comments of an album newest first
// @Summary List album comments
// @Tags Albums
// @Produce json
// @Param slug path string true "Album slug"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Comment] "Page of comments"
// @Failure 404 {object} ErrorResponse "Not Found - Album not found"
// @Router /albums/{slug}/comments [get]
func (h albumHandler) listAlbumComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.comments.GetPaginatedListByAlbum(r.Context(), pageParam(r), album)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "comments", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// createComment posts a comment on an album
// @Summary Comment an album
// @Description Blocked users are refused with a warning
// @Tags Albums
// @Accept json
// @Produce json
// @Param slug path string true "Album slug"
// @Param comment body CommentInput true "Comment"
// @Success 201 {object} models.Comment "Created comment"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid comment"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden - User is blocked"
// @Router /albums/{slug}/comments [post]
func (h albumHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album, err := h.findAlbum(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input CommentInput
		if err := decodeJSON(w, r, "comment", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment := &models.Comment{Description: input.Description, Rating: input.Rating}
		if err := h.comments.Create(r.Context(), comment, album, ctxGetUser(r.Context())); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.responder.WriteCreated(w, comment)
	}
}
