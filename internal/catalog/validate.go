package catalog

import (
	"errors"
	"regexp"
)

var (
	// ErrPersonaIDEmpty is returned when a persona id is empty.
	ErrPersonaIDEmpty = errors.New("persona id must not be empty")

	// ErrPersonaIDFormat is returned when a persona id does not match the required pattern.
	ErrPersonaIDFormat = errors.New("persona id must contain only lowercase alphanumeric characters and hyphens, and must not start or end with a hyphen")

	// personaIDPattern doubles as the path-traversal guard: ids are used
	// verbatim as file names.
	personaIDPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)
)

// ValidatePersonaID checks that id is safe to use as a persona file name.
func ValidatePersonaID(id string) error {
	if id == "" {
		return ErrPersonaIDEmpty
	}
	if !personaIDPattern.MatchString(id) {
		return ErrPersonaIDFormat
	}
	return nil
}
