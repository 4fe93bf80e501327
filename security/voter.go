// Package security decides who may act on which resource and issues the
// bearer tokens that identify users.
package security

import (
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
)

// Attributes a voter can be asked about.
const (
	AttributeEdit   = "EDIT"
	AttributeDelete = "DELETE"
	AttributeBlock  = "BLOCK"
)

// Voter grants or denies one attribute on one kind of subject.
type Voter interface {
	Supports(attribute string, subject any) bool
	Vote(attribute string, subject any, user *models.User) bool
}

// AccessDecider asks every voter that supports an attribute. One grant is enough.
type AccessDecider struct {
	voters []Voter
}

func NewAccessDecider(voters ...Voter) *AccessDecider {
	return &AccessDecider{voters: voters}
}

// DefaultAccessDecider knows albums, comments and users.
func DefaultAccessDecider() *AccessDecider {
	return NewAccessDecider(AlbumVoter{}, CommentVoter{}, UserVoter{})
}

// IsGranted reports whether user may apply attribute to subject. Anonymous
// users are never granted anything.
func (d *AccessDecider) IsGranted(user *models.User, attribute string, subject any) bool {
	if user == nil {
		return false
	}
	for _, v := range d.voters {
		if v.Supports(attribute, subject) && v.Vote(attribute, subject, user) {
			return true
		}
	}
	return false
}

// DenyUnlessGranted returns nil when IsGranted holds, an unauthorized error for
// anonymous users and an access denied error otherwise.
func (d *AccessDecider) DenyUnlessGranted(user *models.User, attribute string, subject any) error {
	if user == nil {
		return errs.NewUnauthorizedError("authentication required")
	}
	if !d.IsGranted(user, attribute, subject) {
		return errs.NewAccessDeniedError(attribute)
	}
	return nil
}
