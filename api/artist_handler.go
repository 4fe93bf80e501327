package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type artistHandler struct {
	responder Responder
	logger    zerolog.Logger
	artists   *services.ArtistService
	albums    *services.AlbumService
	covers    *services.CoverService
}

func newArtistHandler(artists *services.ArtistService, albums *services.AlbumService, covers *services.CoverService) artistHandler {
	logger := log.With().Str("handlerName", "artistHandler").Logger()

	return artistHandler{
		responder: NewResponder(logger),
		logger:    logger,
		artists:   artists,
		albums:    albums,
		covers:    covers,
	}
}

func (h artistHandler) findArtist(r *http.Request) (*models.Artist, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return nil, errs.NewBadRequestError("missing slug")
	}
	artist, err := h.artists.FindBySlug(r.Context(), slug)
	if err != nil {
		return nil, wrapDatabaseError("find", "artist", err)
	}
	return artist, nil
}

// listArtists lists artists by name
// @Summary List artists
// @Tags Artists
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Artist] "Page of artists"
// @Router /artists [get]
func (h artistHandler) listArtists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.artists.GetPaginatedList(r.Context(), pageParam(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "artists", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getArtist shows an artist and a page of their albums
// @Summary Get artist
// @Tags Artists
// @Produce json
// @Param slug path string true "Artist slug"
// @Param page query int false "Album page number"
// @Success 200 {object} ArtistDetails "Artist with albums"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /artists/{slug} [get]
func (h artistHandler) getArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artist, err := h.findArtist(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		albums, err := h.albums.GetPaginatedListByArtist(r.Context(), pageParam(r), artist)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}

		h.responder.WriteJSON(w, ArtistDetails{
			Artist:    *artist,
			Albums:    albumSummaries(h.covers, albums),
			Deletable: h.artists.CanBeDeleted(r.Context(), artist),
		})
	}
}

// createArtist creates an artist
// @Summary Create artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param artist body ArtistInput true "Artist data"
// @Success 201 {object} models.Artist "Created artist"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artist data"
// @Failure 409 {object} ErrorResponse "Conflict - Name already used"
// @Router /artists [post]
func (h artistHandler) createArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ArtistInput
		if err := decodeJSON(w, r, "artist", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist := &models.Artist{Name: input.Name, Description: input.Description}
		if err := h.artists.Save(r.Context(), artist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "artist", err))
			return
		}

		h.responder.WriteCreated(w, artist)
	}
}

// updateArtist edits an artist
// @Summary Update artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param slug path string true "Artist slug"
// @Param artist body ArtistInput true "Artist data"
// @Success 200 {object} models.Artist "Updated artist"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artist data"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /artists/{slug} [put]
func (h artistHandler) updateArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artist, err := h.findArtist(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input ArtistInput
		if err := decodeJSON(w, r, "artist", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist.Name = input.Name
		artist.Description = input.Description
		if err := h.artists.Save(r.Context(), artist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "artist", err))
			return
		}

		h.responder.WriteJSON(w, artist)
	}
}

// deleteArtist deletes an artist no album credits
// @Summary Delete artist
// @Tags Artists
// @Produce json
// @Param slug path string true "Artist slug"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Failure 409 {object} ErrorResponse "Conflict - Artist still credited on albums"
// @Router /artists/{slug} [delete]
func (h artistHandler) deleteArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artist, err := h.findArtist(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.artists.Delete(r.Context(), artist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "artist", err))
			return
		}

		h.responder.WriteDeleted(w, "artist")
	}
}
