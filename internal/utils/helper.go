package utils

import (
	"errors"
	"strings"

	"github.com/spf13/cast"
)

var ErrInvalidID = errors.New("invalid identifier")

// ParsePositiveID converts a raw query value into a positive integer id.
// Empty, non-numeric, zero and negative values are rejected.
func ParsePositiveID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidID
	}

	// cast parses with base 0; leading zeros would otherwise mean octal
	digits := strings.TrimLeft(raw, "0")
	if digits == "" {
		return 0, ErrInvalidID
	}

	id, err := cast.ToInt64E(digits)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
