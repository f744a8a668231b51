package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashIsDeterministic(t *testing.T) {
	h := NewPasswordHasher("s3cret")
	assert.Equal(t, h.Hash("hunter2"), h.Hash("hunter2"))
	assert.NotEqual(t, h.Hash("hunter2"), NewPasswordHasher("other").Hash("hunter2"))
}

func TestPasswordHasher_KnownVector(t *testing.T) {
	// HMAC-SHA256(key="key", msg="The quick brown fox jumps over the lazy dog")
	h := NewPasswordHasher("key")
	assert.Equal(t, "97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg=",
		h.Hash("The quick brown fox jumps over the lazy dog"))
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := NewPasswordHasher("s3cret")

	for _, p := range []string{"admin", "", "correct horse battery staple", "päss"} {
		stored := h.Hash(p)
		assert.True(t, h.Verify(p, stored), "password %q", p)
		assert.False(t, h.Verify(p+"x", stored), "password %q", p)
	}
}

func TestIsLegacyHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, IsLegacyHash(string(legacy)))
	assert.False(t, IsLegacyHash(NewPasswordHasher("s3cret").Hash("admin")))
	assert.False(t, IsLegacyHash(""))
}
