package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/database/dbtest"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00")
)

// memoryStorage keeps cover files in a map.
type memoryStorage struct {
	mu         sync.Mutex
	files      map[string][]byte
	failRemove bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (m *memoryStorage) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return nil
}

func (m *memoryStorage) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRemove {
		return errors.New("storage unavailable")
	}
	delete(m.files, name)
	return nil
}

func (m *memoryStorage) URL(name string) string {
	return "/covers/" + name
}

func (m *memoryStorage) has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

type recordingMailer struct {
	sent []string
	err  error
}

func (r *recordingMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	r.sent = append(r.sent, recipients...)
	return r.err
}

type fixture struct {
	db         database.Database
	storage    *memoryStorage
	mailer     *recordingMailer
	tags       *TagService
	covers     *CoverService
	albums     *AlbumService
	artists    *ArtistService
	categories *CategoryService
	comments   *CommentService
	users      *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d := dbtest.Open(t)
	storage := newMemoryStorage()
	mailer := &recordingMailer{}
	tags := NewTagService(d)
	covers := NewCoverService(d, storage)
	return &fixture{
		db:         d,
		storage:    storage,
		mailer:     mailer,
		tags:       tags,
		covers:     covers,
		albums:     NewAlbumService(d, tags, covers),
		artists:    NewArtistService(d),
		categories: NewCategoryService(d),
		comments:   NewCommentService(d),
		users:      NewUserService(d, mailer),
	}
}

func image(header []byte, size int) io.Reader {
	data := make([]byte, size)
	copy(data, header)
	return bytes.NewReader(data)
}
