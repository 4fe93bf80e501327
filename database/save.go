package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saveRow inserts value when id is the nil UUID and otherwise rewrites every
// column except created_at. Associations are never touched.
func saveRow(tx *gorm.DB, id uuid.UUID, value any) error {
	if id == uuid.Nil {
		return tx.Omit(clause.Associations).Create(value).Error
	}
	return tx.Omit("CreatedAt", clause.Associations).Save(value).Error
}

// deleteOrphanTags removes the tags among candidates that no album links anymore.
func deleteOrphanTags(tx *gorm.DB, candidates []uuid.UUID) error {
	if len(candidates) == 0 {
		return nil
	}
	linked := tx.Session(&gorm.Session{NewDB: true}).Table("albums_tags").Select("tag_id")
	return tx.Where("id IN ?", candidates).
		Where("id NOT IN (?)", linked).
		Delete(&models.Tag{}).Error
}
