package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AlbumInput is what an administrator submits to create or edit an album.
type AlbumInput struct {
	Title       string      `json:"title"`
	Year        int         `json:"year"`
	Description string      `json:"description"`
	Mark        int         `json:"mark"`
	CategoryID  uuid.UUID   `json:"categoryId"`
	ArtistIDs   []uuid.UUID `json:"artistIds"`
	Tags        string      `json:"tags"`
}

type AlbumService struct {
	albums     *database.AlbumRepo
	comments   *database.CommentRepo
	categories *database.CategoryRepo
	artists    *database.ArtistRepo
	tags       *TagService
	covers     *CoverService
	logger     zerolog.Logger
}

func NewAlbumService(db database.Database, tags *TagService, covers *CoverService) *AlbumService {
	return &AlbumService{
		albums:     db.AlbumRepo(),
		comments:   db.CommentRepo(),
		categories: db.CategoryRepo(),
		artists:    db.ArtistRepo(),
		tags:       tags,
		covers:     covers,
		logger:     log.With().Str("service", "album").Logger(),
	}
}

// GetPaginatedList lists albums newest first. The only filter understood is
// tag_slug; an unknown slug lists every album.
func (s *AlbumService) GetPaginatedList(ctx context.Context, page int, filters map[string]string) (database.Page[models.Album], error) {
	query := s.albums.QueryAll(ctx, s.prepareFilters(ctx, filters))
	return database.Paginate[models.Album](query, page, database.PaginatorItemsPerPage, s.albums.WithRelations)
}

func (s *AlbumService) GetPaginatedListByCategory(ctx context.Context, page int, category *models.Category) (database.Page[models.Album], error) {
	query := s.albums.QueryByCategory(ctx, category)
	return database.Paginate[models.Album](query, page, database.PaginatorItemsPerPage, s.albums.WithRelations)
}

func (s *AlbumService) GetPaginatedListByArtist(ctx context.Context, page int, artist *models.Artist) (database.Page[models.Album], error) {
	query := s.albums.QueryByArtist(ctx, artist)
	return database.Paginate[models.Album](query, page, database.PaginatorItemsPerPage, s.albums.WithRelations)
}

func (s *AlbumService) FindBySlug(ctx context.Context, slug string) (*models.Album, error) {
	return s.albums.FindBySlug(ctx, slug)
}

func (s *AlbumService) FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	return s.albums.FindByID(ctx, id)
}

// CountComments returns the number of comments on album, or 0 when counting fails.
func (s *AlbumService) CountComments(ctx context.Context, album *models.Album) int64 {
	count, err := s.comments.CountByAlbum(ctx, album)
	if err != nil {
		s.logger.Warn().Err(err).Str("album", album.Slug).Msg("could not count comments")
		return 0
	}
	return count
}

// GetAverageUserRating returns the mean comment rating of album. Albums
// without comments, and failed queries, give 0.
func (s *AlbumService) GetAverageUserRating(ctx context.Context, album *models.Album) float64 {
	avg, err := s.comments.AverageRatingByAlbum(ctx, album)
	if err != nil {
		s.logger.Warn().Err(err).Str("album", album.Slug).Msg("could not compute average rating")
		return 0
	}
	if !avg.Valid {
		return 0
	}
	return avg.Float64
}

// Apply copies input onto album, resolving the category, the artists and the
// comma separated tag titles.
func (s *AlbumService) Apply(ctx context.Context, album *models.Album, input AlbumInput) error {
	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewInvalidFieldError("categoryId", "unknown category")
	}
	if err != nil {
		return err
	}

	artists, err := s.artists.FindByIDs(ctx, input.ArtistIDs)
	if err != nil {
		return err
	}
	if len(artists) != len(uniqueIDs(input.ArtistIDs)) {
		return errs.NewInvalidFieldError("artistIds", "unknown artist")
	}

	tags, err := s.tags.ResolveTitles(ctx, input.Tags)
	if err != nil {
		return err
	}

	album.Title = input.Title
	album.Year = input.Year
	album.Description = input.Description
	album.Mark = input.Mark
	album.Category = category
	album.CategoryID = category.ID
	album.Artists = artists
	album.Tags = tags
	return nil
}

func (s *AlbumService) Save(ctx context.Context, album *models.Album) error {
	return s.albums.Save(ctx, album)
}

// Delete removes the album with its comments and cover, then the cover file.
func (s *AlbumService) Delete(ctx context.Context, album *models.Album) error {
	coverFile := ""
	if album.Cover != nil {
		coverFile = album.Cover.Filename
	}
	if err := s.albums.Delete(ctx, album); err != nil {
		return err
	}
	if s.covers != nil {
		s.covers.RemoveFile(ctx, coverFile)
	}
	return nil
}

func (s *AlbumService) prepareFilters(ctx context.Context, filters map[string]string) database.AlbumFilters {
	var prepared database.AlbumFilters
	if slug := filters["tag_slug"]; slug != "" {
		tag, err := s.tags.FindOneBySlug(ctx, slug)
		if err == nil {
			prepared.Tag = tag
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Str("tag", slug).Msg("could not resolve tag filter")
		}
	}
	return prepared
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
