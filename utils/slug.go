package utils

import "github.com/gosimple/slug"

// Slugify derives the URL-safe identifier for an article title. The mapping
// is deterministic: identical titles always produce identical slugs, and a
// collision at creation time is a conflict, not a disambiguation.
func Slugify(title string) string {
	return slug.Make(title)
}
