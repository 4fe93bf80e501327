package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a user's star-rated opinion on an album. Comments go away with
// their album.
type Comment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required,min=3,max=500"`
	Rating      int       `json:"rating" gorm:"not null" validate:"min=1,max=5"`
	AlbumID     uuid.UUID `json:"albumId" gorm:"type:uuid;not null;index" validate:"required"`
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Album  *Album `json:"album,omitempty" gorm:"constraint:OnDelete:CASCADE" validate:"-"`
	Author *User  `json:"author,omitempty" gorm:"constraint:OnDelete:RESTRICT" validate:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsWrittenBy reports whether user authored the comment.
func (c *Comment) IsWrittenBy(user *User) bool {
	return user != nil && c.AuthorID != uuid.Nil && c.AuthorID == user.ID
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) BeforeSave(tx *gorm.DB) error {
	if c.Album != nil && c.Album.ID != uuid.Nil {
		c.AlbumID = c.Album.ID
	}
	if c.Author != nil && c.Author.ID != uuid.Nil {
		c.AuthorID = c.Author.ID
	}
	return Validate(c)
}
