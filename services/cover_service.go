package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxCoverSize is the largest accepted cover upload.
const MaxCoverSize = 5 << 20

var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type CoverService struct {
	covers  *database.CoverRepo
	storage CoverStorage
	logger  zerolog.Logger
}

func NewCoverService(db database.Database, storage CoverStorage) *CoverService {
	return &CoverService{
		covers:  db.CoverRepo(),
		storage: storage,
		logger:  log.With().Str("service", "cover").Logger(),
	}
}

// Upload stores upload as the cover of album, replacing the current one if any.
func (s *CoverService) Upload(ctx context.Context, upload io.Reader, album *models.Album) (*models.Cover, error) {
	current, err := s.covers.FindByAlbum(ctx, album.ID)
	switch {
	case err == nil:
		if err := s.Update(ctx, upload, current); err != nil {
			return nil, err
		}
		album.Cover = current
		return current, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.Create(ctx, upload, album)
	default:
		return nil, err
	}
}

// Create stores the uploaded image and records it as the cover of album.
func (s *CoverService) Create(ctx context.Context, upload io.Reader, album *models.Album) (*models.Cover, error) {
	filename, err := s.store(ctx, upload)
	if err != nil {
		return nil, err
	}

	cover := &models.Cover{AlbumID: album.ID, Filename: filename}
	if err := s.covers.Save(ctx, cover); err != nil {
		s.RemoveFile(ctx, filename)
		return nil, err
	}
	album.Cover = cover
	return cover, nil
}

// Update stores the uploaded image, points cover at it and removes the
// previous file. The cover row itself is kept.
func (s *CoverService) Update(ctx context.Context, upload io.Reader, cover *models.Cover) error {
	filename, err := s.store(ctx, upload)
	if err != nil {
		return err
	}

	previous := cover.Filename
	cover.Filename = filename
	if err := s.covers.Save(ctx, cover); err != nil {
		cover.Filename = previous
		s.RemoveFile(ctx, filename)
		return err
	}
	s.RemoveFile(ctx, previous)
	return nil
}

// Delete removes the cover row and its file.
func (s *CoverService) Delete(ctx context.Context, cover *models.Cover) error {
	if err := s.covers.Delete(ctx, cover); err != nil {
		return err
	}
	s.RemoveFile(ctx, cover.Filename)
	return nil
}

// RemoveFile deletes a stored file. Failures are logged, not returned.
func (s *CoverService) RemoveFile(ctx context.Context, filename string) {
	if filename == "" {
		return
	}
	if err := s.storage.Remove(ctx, filename); err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("could not remove cover file")
	}
}

// URL is where clients download the cover.
func (s *CoverService) URL(cover *models.Cover) string {
	if cover == nil {
		return ""
	}
	return s.storage.URL(cover.Filename)
}

// store checks the upload is a supported image and writes it under a fresh name.
func (s *CoverService) store(ctx context.Context, upload io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(upload, MaxCoverSize+1))
	if err != nil {
		return "", errs.NewMalformedPayloadError("cover", err)
	}
	if len(data) > MaxCoverSize {
		return "", errs.NewMaxBodySizeExceededError(MaxCoverSize)
	}

	kind, err := filetype.Match(data)
	if err != nil || !allowedCoverTypes[kind.MIME.Value] {
		return "", errs.NewUnsupportedImageError(kind.MIME.Value)
	}

	filename := uuid.NewString() + "." + kind.Extension
	if err := s.storage.Put(ctx, filename, bytes.NewReader(data), kind.MIME.Value); err != nil {
		return "", err
	}
	return filename, nil
}
