package api

import (
	"time"

	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps router) *routeHandlers {
	access := security.DefaultAccessDecider()

	tags := services.NewTagService(database)
	covers := services.NewCoverService(database, deps.covers)
	albums := services.NewAlbumService(database, tags, covers)
	comments := services.NewCommentService(database)
	categories := services.NewCategoryService(database)
	artists := services.NewArtistService(database)
	users := services.NewUserService(database, deps.mailer)

	startupTime := deps.startupTime
	if startupTime.IsZero() {
		startupTime = time.Now()
	}

	return &routeHandlers{
		authHandler:     newAuthHandler(users, deps.tokens),
		albumHandler:    newAlbumHandler(albums, comments, covers, access),
		commentHandler:  newCommentHandler(comments, access),
		categoryHandler: newCategoryHandler(categories, albums, covers),
		artistHandler:   newArtistHandler(artists, albums, covers),
		userHandler:     newUserHandler(users, access),
		healthHandler:   newHealthHandler(database, startupTime),
	}
}
