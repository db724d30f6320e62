// Package cryptox implements password hashing for stored credentials.
//
// Digests are argon2id with a per-record random salt, serialized in the
// standard PHC form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt-b64>$<key-b64>
//
// The plaintext never reaches storage; only the encoded digest does.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov87/custauth/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var ErrMalformedDigest = errors.New("malformed password digest")

// HashPassword derives an argon2id digest for the password with a fresh
// random salt and returns it in encoded form.
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keySize)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return digest, nil
}

// VerifyPassword reports whether the password matches the encoded digest.
// The comparison of derived keys is constant-time.
func VerifyPassword(password, digest string) bool {
	salt, key, params, err := decodeDigest(digest)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeDigest(digest string) ([]byte, []byte, argonParams, error) {
	var p argonParams

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, p, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, p, ErrMalformedDigest
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, nil, p, ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, p, ErrMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, p, ErrMalformedDigest
	}

	return salt, key, p, nil
}
