package crypto

import (
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const masterKeyLen = 32

// Sealer encrypts collection payloads at rest with XChaCha20-Poly1305.
// Each collection gets its own key derived from the master key via
// HKDF-SHA256 with the collection name as info, so moving a sealed payload
// between keys fails to open.
type Sealer struct {
	master []byte
}

// NewSealer derives a master key from the configured secret using Argon2id
// with a fixed application salt. The secret is configuration, not a user
// credential, so a per-install salt is not required.
func NewSealer(secret string) *Sealer {
	master := argon2.IDKey([]byte(secret), []byte("localbase.at-rest.v1"),
		argonTime, argonMemory, argonThreads, masterKeyLen)
	return &Sealer{master: master}
}

func (s *Sealer) key(name string) ([]byte, error) {
	r := hkdf.New(sha256.New, s.master, nil, []byte(name))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := r.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal encrypts plaintext under the collection's derived key. The random
// nonce is prepended to the ciphertext.
func (s *Sealer) Seal(name string, plaintext []byte) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce, err := RandBytes(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plaintext, []byte(name))...)
	return out, nil
}

// Open decrypts a sealed payload produced by Seal for the same collection.
func (s *Sealer) Open(name string, sealed []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, errors.New("sealed payload too short")
	}
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := sealed[:chacha20poly1305.NonceSizeX]
	ct := sealed[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, []byte(name))
}
