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

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *services.CategoryService
	albums     *services.AlbumService
	covers     *services.CoverService
}

func newCategoryHandler(categories *services.CategoryService, albums *services.AlbumService, covers *services.CoverService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
		albums:     albums,
		covers:     covers,
	}
}

func (h categoryHandler) findCategory(r *http.Request) (*models.Category, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return nil, errs.NewBadRequestError("missing slug")
	}
	category, err := h.categories.FindBySlug(r.Context(), slug)
	if err != nil {
		return nil, wrapDatabaseError("find", "category", err)
	}
	return category, nil
}

// listCategories lists categories by title
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Category] "Page of categories"
// @Router /categories [get]
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.categories.GetPaginatedList(r.Context(), pageParam(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "categories", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getCategory shows a category and a page of its albums
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Album page number"
// @Success 200 {object} CategoryDetails "Category with albums"
// @Failure 404 {object} ErrorResponse "Not Found - Category not found"
// @Router /categories/{slug} [get]
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.findCategory(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		albums, err := h.albums.GetPaginatedListByCategory(r.Context(), pageParam(r), category)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}

		h.responder.WriteJSON(w, CategoryDetails{
			Category:  *category,
			Albums:    albumSummaries(h.covers, albums),
			Deletable: h.categories.CanBeDeleted(r.Context(), category),
		})
	}
}

// createCategory creates a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body CategoryInput true "Category data"
// @Success 201 {object} models.Category "Created category"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid category data"
// @Failure 409 {object} ErrorResponse "Conflict - Title already used"
// @Router /categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CategoryInput
		if err := decodeJSON(w, r, "category", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category := &models.Category{Title: input.Title, Description: input.Description}
		if err := h.categories.Save(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}

		h.responder.WriteCreated(w, category)
	}
}

// updateCategory edits a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param slug path string true "Category slug"
// @Param category body CategoryInput true "Category data"
// @Success 200 {object} models.Category "Updated category"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid category data"
// @Failure 404 {object} ErrorResponse "Not Found - Category not found"
// @Router /categories/{slug} [put]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.findCategory(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input CategoryInput
		if err := decodeJSON(w, r, "category", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category.Title = input.Title
		category.Description = input.Description
		if err := h.categories.Save(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory deletes a category no album uses
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Category not found"
// @Failure 409 {object} ErrorResponse "Conflict - Category still used by albums"
// @Router /categories/{slug} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.findCategory(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Delete(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "category", err))
			return
		}

		h.responder.WriteDeleted(w, "category")
	}
}
