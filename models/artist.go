package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artist struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,min=3,max=255"`
	Description string    `json:"description" gorm:"type:text;not null;default:''" validate:"max=1500"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Artist) TableName() string {
	return "artists"
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Artist) BeforeSave(tx *gorm.DB) (err error) {
	if err := Validate(a); err != nil {
		return err
	}
	a.Slug, err = uniqueSlug(tx, a.TableName(), a.Name, a.ID)
	return err
}
