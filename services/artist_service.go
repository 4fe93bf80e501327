package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ArtistService struct {
	artists *database.ArtistRepo
	albums  *database.AlbumRepo
	logger  zerolog.Logger
}

func NewArtistService(db database.Database) *ArtistService {
	return &ArtistService{
		artists: db.ArtistRepo(),
		albums:  db.AlbumRepo(),
		logger:  log.With().Str("service", "artist").Logger(),
	}
}

func (s *ArtistService) GetPaginatedList(ctx context.Context, page int) (database.Page[models.Artist], error) {
	return database.Paginate[models.Artist](s.artists.QueryAll(ctx), page, database.PaginatorItemsPerPage)
}

func (s *ArtistService) FindBySlug(ctx context.Context, slug string) (*models.Artist, error) {
	return s.artists.FindBySlug(ctx, slug)
}

func (s *ArtistService) FindByID(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	return s.artists.FindByID(ctx, id)
}

func (s *ArtistService) Save(ctx context.Context, artist *models.Artist) error {
	return s.artists.Save(ctx, artist)
}

// Delete removes artist unless it still appears on albums.
func (s *ArtistService) Delete(ctx context.Context, artist *models.Artist) error {
	if !s.CanBeDeleted(ctx, artist) {
		return errs.NewInUseError("artist")
	}
	return s.artists.Delete(ctx, artist)
}

// CanBeDeleted reports whether no album lists artist. A failed count answers false.
func (s *ArtistService) CanBeDeleted(ctx context.Context, artist *models.Artist) bool {
	count, err := s.albums.CountByArtist(ctx, artist)
	if err != nil {
		s.logger.Warn().Err(err).Str("artist", artist.Slug).Msg("could not count albums")
		return false
	}
	return count == 0
}
