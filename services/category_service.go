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

type CategoryService struct {
	categories *database.CategoryRepo
	albums     *database.AlbumRepo
	logger     zerolog.Logger
}

func NewCategoryService(db database.Database) *CategoryService {
	return &CategoryService{
		categories: db.CategoryRepo(),
		albums:     db.AlbumRepo(),
		logger:     log.With().Str("service", "category").Logger(),
	}
}

func (s *CategoryService) GetPaginatedList(ctx context.Context, page int) (database.Page[models.Category], error) {
	return database.Paginate[models.Category](s.categories.QueryAll(ctx), page, database.PaginatorItemsPerPage)
}

func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

func (s *CategoryService) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Save(ctx context.Context, category *models.Category) error {
	return s.categories.Save(ctx, category)
}

// Delete removes category unless albums still reference it.
func (s *CategoryService) Delete(ctx context.Context, category *models.Category) error {
	if !s.CanBeDeleted(ctx, category) {
		return errs.NewInUseError("category")
	}
	return s.categories.Delete(ctx, category)
}

// CanBeDeleted reports whether no album references category. A failed count
// answers false.
func (s *CategoryService) CanBeDeleted(ctx context.Context, category *models.Category) bool {
	count, err := s.albums.CountByCategory(ctx, category)
	if err != nil {
		s.logger.Warn().Err(err).Str("category", category.Slug).Msg("could not count albums")
		return false
	}
	return count == 0
}
