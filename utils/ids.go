package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed document id, e.g. NewID("b") -> "b3f2c1d4e5a6b7c8".
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + raw[:16]
}
