// ABOUTME: Entry type and variable name validation for briefcase
// ABOUTME: Names must start with a letter and contain only letters, digits and underscores

package entry

import (
	"errors"
	"regexp"
)

// ErrInvalidName is returned when a variable name fails validation
var ErrInvalidName = errors.New("invalid entry name")

// Entry is a single named variable held by a store.
type Entry struct {
	Name  string
	Value string
}

var nameRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Valid reports whether name is a well-formed variable name.
// Valid names also never contain path separators, so the file-backed
// store can use them directly as file names.
func Valid(name string) bool {
	return nameRE.MatchString(name)
}
