package user

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	errSealedTokenCorrupt = errors.New("sealed token is corrupt")

	ErrSealKeyMissing = errors.New("AES_KEY must be set to store sessions")
)

// sealer encrypts backend tokens before they are stored with a session.
type sealer struct {
	key [32]byte
}

func newSealer(secret string) (sealer, error) {
	if secret == "" {
		return sealer{}, ErrSealKeyMissing
	}
	return sealer{key: sha256.Sum256([]byte(secret))}, nil
}

func (s sealer) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s sealer) Open(box []byte) ([]byte, error) {
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, errSealedTokenCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errSealedTokenCorrupt
	}
	return plain, nil
}
