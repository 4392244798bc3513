package profile

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidName is wrapped by every ValidateName failure.
var ErrInvalidName = errors.New("invalid profile name")

// Profile names become directory names and flag values, so they start with
// a letter or digit and a leading '-' is never mistaken for a flag.
var nameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

func ValidateName(name string) error {
	if nameRegexp.MatchString(name) {
		return nil
	}
	return fmt.Errorf("%w %q: use 1-64 of a-z 0-9 _ - starting with a letter or digit", ErrInvalidName, name)
}
