// Package credstore persists the optional "remember me" credentials. The
// previous front-end kept them as plaintext in browser storage; here they
// are sealed with a locally generated key so the file on disk is opaque.
package credstore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	keyFile  = "credstore.key"
	credFile = "credentials.sealed"
)

// Credentials is the remembered login pair.
type Credentials struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

// Store seals credentials under a directory-local key.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on first
// save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save seals and writes the credential pair.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return os.WriteFile(filepath.Join(s.dir, credFile), sealed, 0o600)
}

// Load returns the remembered credentials. ok is false when nothing is
// stored; a corrupt or unreadable file is an error.
func (s *Store) Load() (creds Credentials, ok bool, err error) {
	sealed, err := os.ReadFile(filepath.Join(s.dir, credFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}
	key, err := s.loadOrCreateKey()
	if err != nil {
		return Credentials{}, false, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return Credentials{}, false, err
	}
	if len(sealed) < aead.NonceSize() {
		return Credentials{}, false, errors.New("credstore: sealed file truncated")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Credentials{}, false, err
	}
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return Credentials{}, false, err
	}
	return creds, true, nil
}

// Clear removes any stored credentials.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, credFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) loadOrCreateKey() ([]byte, error) {
	path := filepath.Join(s.dir, keyFile)
	key, err := os.ReadFile(path)
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
