package capability

import (
	"fmt"
	"unicode"

	traitkit "github.com/traitkit-dev/traitkit"
)

const maxNameLength = 64

// Name represents a validated capability name.
type Name struct {
	value string
}

// NewName creates a capability name. Names start with a letter and contain
// only letters and digits, at most 64 characters.
func NewName(s string) (Name, error) {
	if s == "" {
		return Name{}, &traitkit.InvalidArgumentError{Reason: "capability name must not be empty"}
	}
	if len(s) > maxNameLength {
		return Name{}, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("capability name too long: %d > %d", len(s), maxNameLength)}
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return Name{}, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("capability name must start with a letter: %s", s)}
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return Name{}, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("capability name contains invalid character %q: %s", r, s)}
		}
	}
	return Name{value: s}, nil
}

// String returns the name.
func (n Name) String() string {
	return n.value
}
