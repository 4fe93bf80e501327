package security

import "github.com/rpupo63/album-review-backend/models"

// UserVoter lets users edit their own account and administrators block
// anyone but themselves.
type UserVoter struct{}

func (UserVoter) Supports(attribute string, subject any) bool {
	if _, ok := subject.(*models.User); !ok {
		return false
	}
	return attribute == AttributeEdit || attribute == AttributeBlock
}

func (UserVoter) Vote(attribute string, subject any, user *models.User) bool {
	target, ok := subject.(*models.User)
	if !ok || user == nil {
		return false
	}
	switch attribute {
	case AttributeEdit:
		return target.ID == user.ID
	case AttributeBlock:
		return user.IsAdmin() && target.ID != user.ID
	}
	return false
}
