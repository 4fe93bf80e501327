package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,min=3,max=255"`
	Description string    `json:"description" gorm:"type:text;not null;default:''" validate:"max=1500"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) (err error) {
	if err := Validate(c); err != nil {
		return err
	}
	c.Slug, err = uniqueSlug(tx, c.TableName(), c.Title, c.ID)
	return err
}
