package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label attached to albums. Titles are unique.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(64);not null;uniqueIndex" validate:"required,max=64"`
	Slug      string    `json:"slug" gorm:"type:varchar(72);not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tag) BeforeSave(tx *gorm.DB) (err error) {
	if err := Validate(t); err != nil {
		return err
	}
	t.Slug, err = uniqueSlug(tx, t.TableName(), t.Title, t.ID)
	return err
}
