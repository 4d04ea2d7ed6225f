package content

import (
	"bytes"
	"fmt"
	"io"
)

// EncryptedStore wraps another Store, encrypting content on Put and
// decrypting on Get. Writes need only the public key; reads require a
// DecryptionContext unlocked with the passphrase first.
type EncryptedStore struct {
	inner Store
	enc   Encryptor
	dec   DecryptionContext // nil until Unlock is called
}

// NewEncryptedStore wraps inner with encryption. The encryptor must have
// its key pair set up already.
func NewEncryptedStore(inner Store, enc Encryptor) (*EncryptedStore, error) {
	if !enc.IsConfigured() {
		return nil, fmt.Errorf("encryption keys are not configured")
	}
	return &EncryptedStore{inner: inner, enc: enc}, nil
}

// Unlock prepares the store for reads by unlocking the private key.
func (s *EncryptedStore) Unlock(passphrase string) error {
	dec, err := s.enc.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking encryption key: %w", err)
	}
	s.dec = dec
	return nil
}

// Put encrypts the content and stores the ciphertext. The ciphertext is
// buffered first because its size differs from the plaintext size the
// inner store must be told.
func (s *EncryptedStore) Put(key string, r io.Reader, size int64) error {
	var buf bytes.Buffer
	if err := s.enc.Encrypt(io.LimitReader(r, size), &buf); err != nil {
		return fmt.Errorf("encrypting content: %w", err)
	}
	return s.inner.Put(key, &buf, int64(buf.Len()))
}

// Get retrieves and decrypts content. Unlock must have been called.
func (s *EncryptedStore) Get(key string, w io.Writer) error {
	if s.dec == nil {
		return fmt.Errorf("store is locked: unlock with the passphrase before reading")
	}

	var buf bytes.Buffer
	if err := s.inner.Get(key, &buf); err != nil {
		return err
	}
	if err := s.dec.Decrypt(&buf, w); err != nil {
		return fmt.Errorf("decrypting content: %w", err)
	}
	return nil
}

// Exists reports whether ciphertext is stored under the key.
func (s *EncryptedStore) Exists(key string) (bool, error) {
	return s.inner.Exists(key)
}

// Validate checks the inner store and the key configuration.
func (s *EncryptedStore) Validate() error {
	if !s.enc.IsConfigured() {
		return fmt.Errorf("encryption keys are not configured")
	}
	return s.inner.Validate()
}

// Compile-time check that EncryptedStore implements the Store interface
var _ Store = (*EncryptedStore)(nil)
