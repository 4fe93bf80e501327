package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cover points at the stored image file of an album. An album has at most one.
type Cover struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AlbumID   uuid.UUID `json:"albumId" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`
	Filename  string    `json:"filename" gorm:"type:varchar(191);not null;uniqueIndex" validate:"required,max=191"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cover) TableName() string {
	return "covers"
}

func (c *Cover) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Cover) BeforeSave(tx *gorm.DB) error {
	return Validate(c)
}
