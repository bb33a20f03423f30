package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var errCorruptToken = errors.New("stored token cannot be opened; log in again")

// sealer encrypts the token at rest with a per-machine key so the session
// database alone does not leak a usable credential.
type sealer struct {
	key [keySize]byte
}

// loadSealer reads the key at path, creating it with 0600 permissions when
// it does not exist yet.
func loadSealer(path string) (*sealer, error) {
	s := &sealer{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(raw) != keySize {
			return nil, fmt.Errorf("session key %s has wrong size %d", path, len(raw))
		}
		copy(s.key[:], raw)
		return s, nil
	case errors.Is(err, os.ErrNotExist):
		if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create key dir: %w", err)
		}
		if err := os.WriteFile(path, s.key[:], 0o600); err != nil {
			return nil, fmt.Errorf("write session key: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("read session key: %w", err)
	}
}

func (s *sealer) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *sealer) open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, errCorruptToken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errCorruptToken
	}
	return plain, nil
}
