// Package content provides the pluggable storage backends that item
// revisions reference, and the eligibility registry the versioning core
// consults before accepting a contents reference.
package content

import (
	"io"
	"sync"
)

// Store provides an interface for content storage backends. All
// operations use io.Reader/io.Writer for streaming to support large
// payloads without loading them entirely into memory.
type Store interface {
	// Put stores content under the given key. size is the number of
	// bytes that will be read from r.
	Put(key string, r io.Reader, size int64) error

	// Get retrieves content by key and writes it to w.
	Get(key string, w io.Writer) error

	// Exists reports whether content is stored under the key.
	Exists(key string) (bool, error)

	// Validate verifies that the backend is accessible and properly
	// configured.
	Validate() error
}

// Encryptor handles encryption of stored content and unlocking for reads.
// Encryption uses the public key only; decryption requires a passphrase
// to unlock the private key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation: a key pair is created, the
	// public key stored in plaintext and the private key encrypted with
	// the provided passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase and returns a
	// DecryptionContext valid for the session.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for the
// duration of a read session. The unlocked key is never written to disk.
type DecryptionContext interface {
	// Decrypt decrypts data read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}

// Registry is the eligibility marker for contents types. A revision may
// only reference contents whose type has been registered; what the type
// means is entirely the provider's business. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]struct{})}
}

// Register marks a contents type as eligible. Registering a type twice
// is harmless.
func (r *Registry) Register(contentsType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[contentsType] = struct{}{}
}

// Eligible reports whether the contents type has been registered.
func (r *Registry) Eligible(contentsType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[contentsType]
	return ok
}

// TypeBlob is the built-in contents type backed by the configured Store.
const TypeBlob = "blob"
