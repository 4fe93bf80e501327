package api

import (
	"net/http"

	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	tokens    *security.TokenIssuer
}

func newAuthHandler(users *services.UserService, tokens *security.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

// register opens a new account
// @Summary Register
// @Description Creates a user with the base role and sends a welcome email
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body services.Registration true "Account data"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid registration"
// @Failure 409 {object} ErrorResponse "Conflict - Email already registered"
// @Router /register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg services.Registration
		if err := decodeJSON(w, r, "registration", &reg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Register(r.Context(), reg)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("register", "user", err))
			return
		}

		h.logger.Info().Str("user", user.Slug).Msg("user registered")
		h.responder.WriteCreated(w, user)
	}
}

// login exchanges credentials for a bearer token
// @Summary Login
// @Description Checks the credentials and returns a signed bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} TokenResponse "Token and user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Router /login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("authenticate", "user", err))
			return
		}

		token, expires, err := h.tokens.Issue(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, TokenResponse{Token: token, ExpiresAt: expires, User: user})
	}
}

// me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "Authenticated user"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, ctxGetUser(r.Context()))
	}
}
