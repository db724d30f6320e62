package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", digest))
	assert.False(t, VerifyPassword("wrong password", digest))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	d1, err := HashPassword("pw1")
	require.NoError(t, err)
	d2, err := HashPassword("pw1")
	require.NoError(t, err)

	// Same plaintext, different salts, different digests; both must verify.
	assert.NotEqual(t, d1, d2)
	assert.True(t, VerifyPassword("pw1", d1))
	assert.True(t, VerifyPassword("pw1", d2))
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotContains(t, digest, "hunter2")
	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"plain-sha256-hex",
		"$argon2id$v=19$m=65536,t=1,p=4$only-one-part",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=oops$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
	}
	for _, digest := range cases {
		assert.False(t, VerifyPassword("pw", digest), "digest %q", digest)
	}
}

func TestVerifyPassword_EmptyPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("", digest))
	assert.False(t, VerifyPassword("nonempty", digest))
}
