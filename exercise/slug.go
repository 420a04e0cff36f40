package exercise

import "github.com/goliatone/go-slug"

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeID applies the default slug normalization rules to an exercise id.
func NormalizeID(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidID reports whether the exercise id matches the default slug rules.
func IsValidID(value string) bool {
	return slug.IsValid(value)
}
