package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string                      `json:"email" gorm:"type:varchar(180);not null;uniqueIndex" validate:"required,email,max=180"`
	Username  string                      `json:"username" gorm:"type:varchar(50);not null" validate:"required,min=3,max=50"`
	Roles     datatypes.JSONSlice[string] `json:"roles" gorm:"not null"`
	Password  string                      `json:"-" gorm:"type:varchar(255);not null" validate:"required"`
	Slug      string                      `json:"slug" gorm:"type:varchar(64);not null;uniqueIndex"`
	Blocked   bool                        `json:"blocked" gorm:"not null;default:false"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// GetRoles returns the stored roles plus ROLE_USER, without duplicates.
func (u *User) GetRoles() []string {
	roles := append([]string{}, u.Roles...)
	roles = append(roles, RoleUser)
	slices.Sort(roles)
	return slices.Compact(roles)
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.GetRoles(), role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.Roles == nil {
		u.Roles = datatypes.JSONSlice[string]{}
	}
	if err := Validate(u); err != nil {
		return err
	}
	u.Slug, err = uniqueSlug(tx, u.TableName(), u.Username, u.ID)
	return err
}
