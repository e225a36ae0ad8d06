package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountID = errors.New("invalid account identifier")
)

// Validation constants
const (
	MaxAccountIDLength = 64
)

// Account identifiers travel inside URL paths, so only a conservative
// character set is accepted.
var accountIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateAccountID validates an account identifier.
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: identifier cannot be empty", ErrInvalidAccountID)
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: identifier exceeds %d characters", ErrInvalidAccountID, MaxAccountIDLength)
	}

	if !accountIDRegex.MatchString(id) {
		return fmt.Errorf("%w: identifier contains forbidden characters", ErrInvalidAccountID)
	}

	return nil
}
