package transform

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// keySalt is fixed: the key only has to be reproducible from the passphrase
// for the same store, it is not a password hash.
var keySalt = []byte("randcert-reportstore")

func keyFromPassphrase(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), keySalt, 1, 64*1024, 4, 32)
}

type aesGCMTransform struct{ gcm cipher.AEAD }

// NewAESGCMTransform seals records with AES-256-GCM under a key derived from
// passphrase. Each Apply draws a fresh nonce and prepends it.
func NewAESGCMTransform(passphrase string) (Transform, error) {
	if passphrase == "" {
		return nil, errors.New("aesgcm: empty passphrase")
	}
	block, err := aes.NewCipher(keyFromPassphrase(passphrase))
	if err != nil {
		return nil, fmt.Errorf("aesgcm: failed to create cipher block: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: failed to create GCM: %w", err)
	}
	return &aesGCMTransform{gcm: gcm}, nil
}

func (e *aesGCMTransform) Apply(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aesgcm apply (encrypt): failed to generate nonce: %w", err)
	}
	return e.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aesGCMTransform) Reverse(ciphertext []byte) ([]byte, error) {
	n := e.gcm.NonceSize()
	if len(ciphertext) < n {
		return nil, errors.New("aesgcm reverse (decrypt): ciphertext too short")
	}
	plaintext, err := e.gcm.Open(nil, ciphertext[:n], ciphertext[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("aesgcm reverse (decrypt): failed to open GCM message: %w", err)
	}
	return plaintext, nil
}
