package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	access    *security.AccessDecider
}

func newUserHandler(users *services.UserService, access *security.AccessDecider) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		access:    access,
	}
}

func (h userHandler) findUser(r *http.Request) (*models.User, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return nil, errs.NewBadRequestError("missing slug")
	}
	user, err := h.users.FindBySlug(r.Context(), slug)
	if err != nil {
		return nil, wrapDatabaseError("find", "user", err)
	}
	return user, nil
}

// listUsers lists users by email
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.User] "Page of users"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users [get]
func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.users.GetPaginatedList(r.Context(), pageParam(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "users", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getUser shows one user
// @Summary Get user
// @Tags Users
// @Produce json
// @Param slug path string true "User slug"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /users/{slug} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// changePassword replaces the password of the current user
// @Summary Change password
// @Description Users may only change their own password and must confirm the current one
// @Tags Users
// @Accept json
// @Produce json
// @Param slug path string true "User slug"
// @Param passwords body PasswordChange true "Current and new password"
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Wrong current password or invalid new password"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /users/{slug}/password [put]
func (h userHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeEdit, user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req PasswordChange
		if err := decodeJSON(w, r, "password change", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("change password of", "user", err))
			return
		}

		h.logger.Info().Str("user", user.Slug).Msg("password changed")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "password changed successfully",
		})
	}
}

// toggleBlock blocks or unblocks a user, administrators only and never themselves
// @Summary Toggle block
// @Tags Users
// @Produce json
// @Param slug path string true "User slug"
// @Success 200 {object} models.User "User with the new blocked flag"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /users/{slug}/block [put]
func (h userHandler) toggleBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeBlock, user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.ToggleBlocked(r.Context(), user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("block", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
