package utils

import "strings"

// CategorySeparator delimits levels in hierarchical category paths, e.g.
// "Food/Dairy".
const CategorySeparator = "/"

// CategorySegments splits a category path into its ordered segments,
// dropping empty levels left by stray separators.
func CategorySegments(path string) []string {
	parts := strings.Split(path, CategorySeparator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// NormalizeCategory rebuilds the canonical form of a category path.
func NormalizeCategory(path string) string {
	return strings.Join(CategorySegments(path), CategorySeparator)
}
