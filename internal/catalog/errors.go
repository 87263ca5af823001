package catalog

import "errors"

var (
	// ErrUnknownGenre is returned when a genre key is not part of the schema.
	ErrUnknownGenre = errors.New("unknown genre")

	// ErrInvalidEntry is returned when a required entry field is missing.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrSectionNotFound is returned when a section's marker comment or
	// section container is absent from the document.
	ErrSectionNotFound = errors.New("section not found")

	// ErrContainerNotFound is returned when no shelf container exists for a genre.
	ErrContainerNotFound = errors.New("albums container not found")

	// ErrUnbalancedMarkup is returned when a closing tag cannot be matched.
	ErrUnbalancedMarkup = errors.New("unbalanced markup")

	// ErrEntryNotFound is returned for out-of-range indexes and unknown IDs.
	ErrEntryNotFound = errors.New("entry not found")
)

// IsLookupError reports whether err is a validation or lookup failure, i.e.
// the request was rejected before any mutation was attempted.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrUnknownGenre) ||
		errors.Is(err, ErrInvalidEntry) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrContainerNotFound) ||
		errors.Is(err, ErrUnbalancedMarkup)
}
