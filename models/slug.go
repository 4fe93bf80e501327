package models

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	slugNonAlnum  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugMultiDash = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a display name into a lower-case, URL-safe string.
// Accented letters are folded to their ASCII base ("Motörhead" -> "motorhead").
func Slugify(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	slug := strings.ToLower(folded)
	slug = slugNonAlnum.ReplaceAllString(slug, "-")
	slug = slugMultiDash.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "n-a"
	}
	return slug
}

// uniqueSlug derives a slug from source and appends -2, -3, ... until no other
// row of table carries it. The row identified by excludeID is ignored so that
// re-saving an entity keeps its own slug.
func uniqueSlug(tx *gorm.DB, table, source string, excludeID uuid.UUID) (string, error) {
	base := Slugify(source)
	slug := base
	db := tx.Session(&gorm.Session{NewDB: true}).WithContext(tx.Statement.Context)
	for i := 2; ; i++ {
		var count int64
		if err := db.Table(table).Where("slug = ? AND id <> ?", slug, excludeID).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
