package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("password123")
	assert.NoError(t, err)

	second, err := HashPassword("password123")
	assert.NoError(t, err)

	// Same plaintext, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("password123", first))
	assert.True(t, CheckPassword("password123", second))
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("correct-password")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		plain    string
		digest   string
		expected bool
	}{
		{name: "matching password", plain: "correct-password", digest: digest, expected: true},
		{name: "wrong password", plain: "wrong-password", digest: digest, expected: false},
		{name: "empty password", plain: "", digest: digest, expected: false},
		{name: "malformed digest", plain: "correct-password", digest: "not-a-bcrypt-digest", expected: false},
		{name: "empty digest", plain: "correct-password", digest: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckPassword(tt.plain, tt.digest))
		})
	}
}
