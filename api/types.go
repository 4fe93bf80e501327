package api

import (
	"time"

	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler     authHandler
	albumHandler    albumHandler
	commentHandler  commentHandler
	categoryHandler categoryHandler
	artistHandler   artistHandler
	userHandler     userHandler
	healthHandler   healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error      string           `json:"error" example:"invalid field"`
	Status     string           `json:"status" example:"error"`
	Field      string           `json:"field,omitempty" example:"title"`
	Details    string           `json:"details,omitempty" example:"Additional error details"`
	Violations []errs.Violation `json:"violations,omitempty"`
}

// AlbumDetails is an album with its comment statistics and cover location.
type AlbumDetails struct {
	models.Album
	CommentCount  int64   `json:"commentCount"`
	AverageRating float64 `json:"averageRating"`
	CoverURL      string  `json:"coverUrl,omitempty"`
}

// AlbumSummary is one row of an album listing.
type AlbumSummary struct {
	models.Album
	CoverURL string `json:"coverUrl,omitempty"`
}

// CategoryDetails is a category with the first page of its albums.
type CategoryDetails struct {
	models.Category
	Albums    database.Page[AlbumSummary] `json:"albums"`
	Deletable bool                        `json:"deletable"`
}

// ArtistDetails is an artist with the first page of their albums.
type ArtistDetails struct {
	models.Artist
	Albums    database.Page[AlbumSummary] `json:"albums"`
	Deletable bool                        `json:"deletable"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// LoginRequest carries the credentials of a login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange is submitted to replace a password.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// CommentInput is the editable part of a comment.
type CommentInput struct {
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// CategoryInput is the editable part of a category.
type CategoryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ArtistInput is the editable part of an artist.
type ArtistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
