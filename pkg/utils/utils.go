// Package utils provides password hashing for the identity store.
//
// Hashes use Argon2id with parameters tuned for a 50-150ms verification
// cost (19 MiB memory, 2 iterations, parallelism 1), encoded in the PHC
// string format so the salt and parameters travel with the hash.
package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonMemory  = 19456 // KiB
	argonTime    = 2
	argonThreads = 1
	argonSaltLen = 16
	argonKeyLen  = 32
)

// ErrMalformedHash is returned when a stored hash cannot be parsed as a
// PHC-encoded Argon2id string.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an Argon2id hash of password with a fresh random
// salt and returns it in PHC string form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// CheckPasswordHash reports whether password matches the PHC-encoded
// hash. The comparison of the derived keys is constant-time. A hash that
// cannot be parsed never matches.
func CheckPasswordHash(password, hash string) bool {
	memory, time, threads, salt, key, err := decodeHash(hash)
	if err != nil {
		return false
	}
	derived := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func decodeHash(hash string) (memory, time uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		err = ErrMalformedHash
		return
	}
	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		err = ErrMalformedHash
		return
	}
	if version != argon2.Version {
		err = ErrMalformedHash
		return
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		err = ErrMalformedHash
		return
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		err = ErrMalformedHash
		return
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		err = ErrMalformedHash
		return
	}
	return
}
