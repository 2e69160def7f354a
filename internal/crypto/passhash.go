// Package crypto implements password hashing and at-rest sealing for
// sensitive collections.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// HashPassword returns a packed "salt$hash" string (both base64url) suitable
// for storage inside a JSON record.
func HashPassword(password string) (string, error) {
	salt, err := RandBytes(saltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawURLEncoding.EncodeToString(salt) + "$" +
		base64.RawURLEncoding.EncodeToString(hash), nil
}

// VerifyPassword checks password against a packed "salt$hash" string in
// constant time. Undecodable packed values verify as false.
func VerifyPassword(password, packed string) bool {
	salt, hash, err := unpack(packed)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(got, hash) == 1
}

func unpack(packed string) (salt, hash []byte, err error) {
	i := strings.IndexByte(packed, '$')
	if i < 0 {
		return nil, nil, errors.New("malformed packed hash")
	}
	salt, err = base64.RawURLEncoding.DecodeString(packed[:i])
	if err != nil {
		return nil, nil, err
	}
	hash, err = base64.RawURLEncoding.DecodeString(packed[i+1:])
	if err != nil {
		return nil, nil, err
	}
	return salt, hash, nil
}
