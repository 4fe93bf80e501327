package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TagService struct {
	tags   *database.TagRepo
	logger zerolog.Logger
}

func NewTagService(db database.Database) *TagService {
	return &TagService{
		tags:   db.TagRepo(),
		logger: log.With().Str("service", "tag").Logger(),
	}
}

func (s *TagService) FindOneBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.tags.FindBySlug(ctx, slug)
}

func (s *TagService) FindOneByTitle(ctx context.Context, title string) (*models.Tag, error) {
	return s.tags.FindByTitle(ctx, title)
}

func (s *TagService) FindOneByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.tags.FindByID(ctx, id)
}

func (s *TagService) Save(ctx context.Context, tag *models.Tag) error {
	return s.tags.Save(ctx, tag)
}

func (s *TagService) Delete(ctx context.Context, tag *models.Tag) error {
	return s.tags.Delete(ctx, tag)
}

// ResolveTitles turns a comma separated list of titles into tags. Blank titles
// and titles sharing a slug with an earlier one are dropped. Known titles
// reuse their tag; unknown ones come back unsaved and are created by the
// album save that links them.
func (s *TagService) ResolveTitles(ctx context.Context, titles string) ([]models.Tag, error) {
	tags := []models.Tag{}
	seen := map[string]bool{}
	for _, title := range strings.Split(titles, ",") {
		title = strings.TrimSpace(title)
		key := models.Slugify(title)
		if title == "" || seen[key] {
			continue
		}
		seen[key] = true

		tag, err := s.tags.FindByTitle(ctx, title)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tags = append(tags, models.Tag{Title: title})
			continue
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// JoinTitles is the inverse of ResolveTitles.
func (s *TagService) JoinTitles(tags []models.Tag) string {
	titles := make([]string, len(tags))
	for i, tag := range tags {
		titles[i] = tag.Title
	}
	return strings.Join(titles, ", ")
}
