package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUpdate(t *testing.T) {
	in := map[string]interface{}{
		"username": "newname",
		"email":    "a@b.com",
		"role":     "admin",
		"password": "sneaky123",
		"userid":   "u999",
		"_id":      "abc",
	}

	out := SanitizeUpdate(in)

	assert.Equal(t, map[string]interface{}{
		"username": "newname",
		"email":    "a@b.com",
	}, out)
}

func TestSanitizeUpdateAllProtected(t *testing.T) {
	out := SanitizeUpdate(map[string]interface{}{
		"role":     "admin",
		"password": "x",
	})
	assert.Empty(t, out)
}

func TestSanitizeUpdateEmpty(t *testing.T) {
	assert.Empty(t, SanitizeUpdate(map[string]interface{}{}))
}
