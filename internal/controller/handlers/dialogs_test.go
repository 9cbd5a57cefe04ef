package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailRegex(t *testing.T) {
	for _, valid := range []string{"pat@example.com", "a.b+c@clinic.co.uk"} {
		assert.True(t, emailRegex.MatchString(valid), valid)
	}
	for _, invalid := range []string{"", "pat", "pat@", "pat@example", "pat @example.com", "a@b@c.d"} {
		assert.False(t, emailRegex.MatchString(invalid), invalid)
	}
}
