package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayName(t *testing.T) {
	assert.Equal(t, "jane", newAuthUser("jane@example.com").GetDisplayName())
	assert.Equal(t, "@example.com", newAuthUser("@example.com").GetDisplayName(), "falls back to the email")
}
