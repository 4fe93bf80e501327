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

type CommentService struct {
	comments *database.CommentRepo
	logger   zerolog.Logger
}

func NewCommentService(db database.Database) *CommentService {
	return &CommentService{
		comments: db.CommentRepo(),
		logger:   log.With().Str("service", "comment").Logger(),
	}
}

func (s *CommentService) GetPaginatedList(ctx context.Context, page int) (database.Page[models.Comment], error) {
	return database.Paginate[models.Comment](s.comments.QueryAll(ctx), page, database.PaginatorItemsPerPage, s.comments.WithRelations)
}

func (s *CommentService) GetPaginatedListByAlbum(ctx context.Context, page int, album *models.Album) (database.Page[models.Comment], error) {
	return database.Paginate[models.Comment](s.comments.QueryByAlbum(ctx, album), page, database.PaginatorItemsPerPage, s.comments.WithRelations)
}

func (s *CommentService) CountByAlbum(ctx context.Context, album *models.Album) (int64, error) {
	return s.comments.CountByAlbum(ctx, album)
}

func (s *CommentService) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.comments.FindByID(ctx, id)
}

// Create attaches comment to album and author and saves it. Blocked authors
// are refused and nothing is written.
func (s *CommentService) Create(ctx context.Context, comment *models.Comment, album *models.Album, author *models.User) error {
	if author == nil {
		return errs.NewUnauthorizedError("authentication required")
	}
	if author.Blocked {
		s.logger.Info().Str("user", author.Slug).Str("album", album.Slug).Msg("blocked user tried to comment")
		return errs.NewUserBlockedError()
	}
	comment.Album = album
	comment.AlbumID = album.ID
	comment.Author = author
	comment.AuthorID = author.ID
	return s.comments.Save(ctx, comment)
}

// Update saves an edited comment unless its editor is blocked.
func (s *CommentService) Update(ctx context.Context, comment *models.Comment, editor *models.User) error {
	if editor == nil {
		return errs.NewUnauthorizedError("authentication required")
	}
	if editor.Blocked {
		return errs.NewUserBlockedError()
	}
	return s.comments.Save(ctx, comment)
}

func (s *CommentService) Save(ctx context.Context, comment *models.Comment) error {
	return s.comments.Save(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, comment *models.Comment) error {
	return s.comments.Delete(ctx, comment)
}
