package security

import "github.com/rpupo63/album-review-backend/models"

// CommentVoter lets authors edit their comments. Authors and administrators
// may delete them.
type CommentVoter struct{}

func (CommentVoter) Supports(attribute string, subject any) bool {
	if _, ok := subject.(*models.Comment); !ok {
		return false
	}
	return attribute == AttributeEdit || attribute == AttributeDelete
}

func (CommentVoter) Vote(attribute string, subject any, user *models.User) bool {
	comment, ok := subject.(*models.Comment)
	if !ok || user == nil {
		return false
	}
	switch attribute {
	case AttributeEdit:
		return comment.IsWrittenBy(user)
	case AttributeDelete:
		return comment.IsWrittenBy(user) || user.IsAdmin()
	}
	return false
}
