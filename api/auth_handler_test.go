package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/register", map[string]string{
		"email":    "Listener@Example.com",
		"username": "listener",
		"password": "long-enough",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.User](t, rec)
	assert.Equal(t, "listener@example.com", created.Email)
	assert.Equal(t, []string{models.RoleUser}, created.GetRoles())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(http.MethodPost, "/login", LoginRequest{Email: "listener@example.com", Password: "long-enough"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[TokenResponse](t, rec)
	require.NotEmpty(t, login.Token)

	rec = s.do(http.MethodGet, "/me", nil, login.User)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[models.User](t, rec)
	assert.Equal(t, created.ID, me.ID)
}

func TestMeRequiresAuthentication(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t, nil)
	dbtest.NewUser(t, s.db, "listener", false)

	rec := s.do(http.MethodPost, "/login", LoginRequest{Email: "listener@example.com", Password: "not-the-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/login", LoginRequest{Email: "nobody@example.com", Password: dbtest.Password}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterReportsFieldViolations(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/register", map[string]string{
		"email":    "not-an-email",
		"username": "listener",
		"password": "long-enough",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	require.NotEmpty(t, resp.Violations)
	assert.Equal(t, "email", resp.Violations[0].Field)

	rec = s.do(http.MethodPost, "/register", map[string]string{
		"email":    "listener@example.com",
		"username": "listener",
		"password": "long-enough",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/register", map[string]string{
		"email":    "listener@example.com",
		"username": "someone",
		"password": "long-enough",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMalformedJSONIsRejected(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/login", "just a string", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidBearerTokenIsRejected(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/albums", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	forged := &models.User{ID: uuid.New(), Username: "ghost"}
	rec = s.do(http.MethodGet, "/albums", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token for an unknown user")
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, map[string]string{"LOGIN_RATE_LIMIT": "2"})

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/login", LoginRequest{Email: "a@example.com", Password: "whatever"}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := s.do(http.MethodPost, "/login", LoginRequest{Email: "a@example.com", Password: "whatever"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
