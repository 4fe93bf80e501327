package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Album is a reviewed record. It belongs to one category and one author,
// is linked to tags and artists through join tables and may carry a cover.
type Album struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=3,max=255"`
	Year        int       `json:"year" gorm:"not null" validate:"gt=0"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required,min=3,max=1500"`
	Mark        int       `json:"mark" gorm:"not null" validate:"min=1,max=5"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	CategoryID  uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index" validate:"required"`
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *Category `json:"category,omitempty" gorm:"constraint:OnDelete:RESTRICT" validate:"-"`
	Author   *User     `json:"author,omitempty" gorm:"constraint:OnDelete:RESTRICT" validate:"-"`
	Tags     []Tag     `json:"tags" gorm:"many2many:albums_tags;constraint:OnDelete:CASCADE" validate:"-"`
	Artists  []Artist  `json:"artists" gorm:"many2many:albums_artists;constraint:OnDelete:CASCADE" validate:"-"`
	Cover    *Cover    `json:"cover,omitempty" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Album) TableName() string {
	return "albums"
}

// IsNew reports whether the album has not been persisted yet.
func (a *Album) IsNew() bool {
	return a.ID == uuid.Nil
}

// AddTag links tag to the album unless it is already linked.
func (a *Album) AddTag(tag Tag) {
	for _, t := range a.Tags {
		if sameTag(t, tag) {
			return
		}
	}
	a.Tags = append(a.Tags, tag)
}

// RemoveTag unlinks tag. Removing a tag that is not linked does nothing.
func (a *Album) RemoveTag(tag Tag) {
	kept := a.Tags[:0]
	for _, t := range a.Tags {
		if !sameTag(t, tag) {
			kept = append(kept, t)
		}
	}
	a.Tags = kept
}

// AddArtist links artist to the album unless it is already linked.
func (a *Album) AddArtist(artist Artist) {
	for _, existing := range a.Artists {
		if existing.ID == artist.ID {
			return
		}
	}
	a.Artists = append(a.Artists, artist)
}

// RemoveArtist unlinks artist. Removing an artist that is not linked does nothing.
func (a *Album) RemoveArtist(artist Artist) {
	kept := a.Artists[:0]
	for _, existing := range a.Artists {
		if existing.ID != artist.ID {
			kept = append(kept, existing)
		}
	}
	a.Artists = kept
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Album) BeforeSave(tx *gorm.DB) (err error) {
	if a.Category != nil && a.Category.ID != uuid.Nil {
		a.CategoryID = a.Category.ID
	}
	if a.Author != nil && a.Author.ID != uuid.Nil {
		a.AuthorID = a.Author.ID
	}
	if err := Validate(a); err != nil {
		return err
	}
	a.Slug, err = uniqueSlug(tx, a.TableName(), a.Title, a.ID)
	return err
}

func sameTag(a, b Tag) bool {
	if a.ID != uuid.Nil && b.ID != uuid.Nil {
		return a.ID == b.ID
	}
	return a.Title == b.Title
}
