package database

import (
	"gorm.io/gorm"
)

// PaginatorItemsPerPage is the page size of every listing.
const PaginatorItemsPerPage = 10

// Page is one slice of a listing plus what a pager needs to render links.
type Page[T any] struct {
	Items     []T   `json:"items"`
	Page      int   `json:"page"`
	PerPage   int   `json:"perPage"`
	Total     int64 `json:"total"`
	PageCount int   `json:"pageCount"`
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Page < p.PageCount
}

// Paginate counts the rows matched by query and fetches the requested page.
// scopes are applied to the fetch only, so preloads never reach the count.
// A page past the end yields an empty Items slice.
func Paginate[T any](query *gorm.DB, page, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = PaginatorItemsPerPage
	}

	result := Page[T]{Page: page, PerPage: perPage, Items: []T{}}

	q := query.Session(&gorm.Session{})
	if err := q.Count(&result.Total).Error; err != nil {
		return result, err
	}
	result.PageCount = int((result.Total + int64(perPage) - 1) / int64(perPage))

	if page > result.PageCount {
		return result, nil
	}

	items := make([]T, 0, perPage)
	if err := q.Scopes(scopes...).Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}
