package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/album-review-backend/models"
)

// setupPublicRoutes sets up the routes anonymous visitors may call
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, loginLimit int) {
	r.Post("/register", handlers.authHandler.register())
	r.With(loginRateLimit(loginLimit)).Post("/login", handlers.authHandler.login())

	r.Get("/albums", handlers.albumHandler.listAlbums())
	r.Get("/albums/{slug}", handlers.albumHandler.getAlbum())
	r.Get("/albums/{slug}/comments", handlers.albumHandler.listAlbumComments())

	r.Get("/comments", handlers.commentHandler.listComments())

	r.Get("/categories", handlers.categoryHandler.listCategories())
	r.Get("/categories/{slug}", handlers.categoryHandler.getCategory())

	r.Get("/artists", handlers.artistHandler.listArtists())
	r.Get("/artists/{slug}", handlers.artistHandler.getArtist())
}

// setupAuthenticatedRoutes sets up the routes that need a logged in user.
// Ownership checks happen in the handlers through the access decider.
func setupAuthenticatedRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireUser)

		r.Get("/me", handlers.authHandler.me())

		r.Put("/albums/{slug}", handlers.albumHandler.updateAlbum())
		r.Delete("/albums/{slug}", handlers.albumHandler.deleteAlbum())
		r.Put("/albums/{slug}/cover", handlers.albumHandler.uploadCover())
		r.Post("/albums/{slug}/comments", handlers.albumHandler.createComment())

		r.Put("/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Get("/users", handlers.userHandler.listUsers())
		r.Get("/users/{slug}", handlers.userHandler.getUser())
		r.Put("/users/{slug}/password", handlers.userHandler.changePassword())
		r.Put("/users/{slug}/block", handlers.userHandler.toggleBlock())
	})
}

// setupAdminRoutes sets up the catalogue management routes
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireRole(models.RoleAdmin))

		r.Post("/albums", handlers.albumHandler.createAlbum())

		r.Post("/categories", handlers.categoryHandler.createCategory())
		r.Put("/categories/{slug}", handlers.categoryHandler.updateCategory())
		r.Delete("/categories/{slug}", handlers.categoryHandler.deleteCategory())

		r.Post("/artists", handlers.artistHandler.createArtist())
		r.Put("/artists/{slug}", handlers.artistHandler.updateArtist())
		r.Delete("/artists/{slug}", handlers.artistHandler.deleteArtist())
	})
}
