package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  *services.CommentService
	access    *security.AccessDecider
}

func newCommentHandler(comments *services.CommentService, access *security.AccessDecider) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
		access:    access,
	}
}

func (h commentHandler) findComment(r *http.Request) (*models.Comment, error) {
	commentID, err := uuidParam(chi.URLParam(r, "commentID"), "commentID")
	if err != nil {
		return nil, err
	}
	comment, err := h.comments.FindByID(r.Context(), commentID)
	if err != nil {
		return nil, wrapDatabaseError("find", "comment", err)
	}
	return comment, nil
}

// listComments lists every comment newest first
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Comment] "Page of comments"
// @Router /comments [get]
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.comments.GetPaginatedList(r.Context(), pageParam(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "comments", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// updateComment edits a comment, author only
// @Summary Update comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Param comment body CommentInput true "Comment"
// @Success 200 {object} models.Comment "Updated comment"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid comment"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comments/{commentID} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := h.findComment(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		editor := ctxGetUser(r.Context())
		if err := h.access.DenyUnlessGranted(editor, security.AttributeEdit, comment); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input CommentInput
		if err := decodeJSON(w, r, "comment", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment.Description = input.Description
		comment.Rating = input.Rating
		if err := h.comments.Update(r.Context(), comment, editor); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment deletes a comment, author or administrator only
// @Summary Delete comment
// @Tags Comments
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := h.findComment(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.access.DenyUnlessGranted(ctxGetUser(r.Context()), security.AttributeDelete, comment); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.comments.Delete(r.Context(), comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteDeleted(w, "comment")
	}
}
