package testutil

import (
	"vfs-go/internal/content"
	"vfs-go/internal/encryption"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() content.Encryptor {
	return encryption.NewTestEncryptor()
}
