package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rs/zerolog"
)

// maxJSONBodySize caps every JSON request body.
const maxJSONBodySize = 1 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

// WriteCreated writes data with a 201 status.
func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusCreated, data)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:      apiErr.Message(),
		Status:     "error",
		Field:      apiErr.Field,
		Details:    apiErr.Details,
		Violations: apiErr.Violations,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(apiErr).Str("cause", apiErr.GetFullError()).Msg("request failed")
	} else if apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusConflict {
		// user visible warnings: blocked authors, in-use deletions, denied voters
		r.logger.Warn().Err(apiErr).Msg("request refused")
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}

// WriteDeleted writes the confirmation sent after a successful delete.
func (r Responder) WriteDeleted(w http.ResponseWriter, entity string) {
	r.WriteJSON(w, map[string]string{
		"status":  "success",
		"message": entity + " deleted successfully",
	})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, payloadName string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// pageParam reads the page query value. Missing, malformed and values below 1 give 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// uuidParam parses a uuid path parameter.
func uuidParam(value, name string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
