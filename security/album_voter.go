package security

import "github.com/rpupo63/album-review-backend/models"

// AlbumVoter lets administrators edit and delete albums.
type AlbumVoter struct{}

func (AlbumVoter) Supports(attribute string, subject any) bool {
	if _, ok := subject.(*models.Album); !ok {
		return false
	}
	return attribute == AttributeEdit || attribute == AttributeDelete
}

func (AlbumVoter) Vote(attribute string, subject any, user *models.User) bool {
	if user == nil {
		return false
	}
	switch attribute {
	case AttributeEdit, AttributeDelete:
		return user.IsAdmin()
	}
	return false
}
