package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/database/dbtest"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

type testServer struct {
	t       *testing.T
	db      database.Database
	handler http.Handler
	tokens  *security.TokenIssuer
	storage *services.LocalCoverStorage
}

func newTestServer(t *testing.T, cfg map[string]string) *testServer {
	t.Helper()
	d := dbtest.Open(t)
	storage, err := services.NewLocalCoverStorage(t.TempDir(), "/covers/")
	require.NoError(t, err)
	tokens := security.NewTokenIssuer("test-secret", time.Hour)

	handler := newRouter(d,
		withConfig(cfg),
		withStartupTime(time.Now()),
		withCoverStorage(storage),
		withMailer(services.LogMailer{}),
		withTokenIssuer(tokens),
		withRegistry(prometheus.NewRegistry()),
	)

	return &testServer{t: t, db: d, handler: handler, tokens: tokens, storage: storage}
}

// do sends body as JSON, authenticated as user when user is not nil.
func (s *testServer) do(method, path string, body any, user *models.User) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req, user)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// upload sends content as the multipart field "file".
func (s *testServer) upload(path string, content []byte, user *models.User) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cover.bin")
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.authorize(req, user)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) authorize(req *http.Request, user *models.User) {
	s.t.Helper()
	if user == nil {
		return
	}
	token, _, err := s.tokens.Issue(user)
	require.NoError(s.t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
