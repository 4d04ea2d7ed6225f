package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/vfs",
		LogDir:  "/home/user/.local/share/vfs/log",
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/vfs/db"},
		Content: ContentConfig{
			Type:      "s3",
			Name:      "primary",
			Encrypted: true,
			S3Bucket:  "vfs-content",
			S3Prefix:  "prod",
			S3Region:  "us-east-1",
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/vfs/keys/vfs.pub",
			PrivateKeyPath: "/home/user/.local/share/vfs/keys/vfs.key",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Content.Type != "s3" {
		t.Errorf("Content.Type = %q, want %q", got.Content.Type, "s3")
	}
	if got.Content.S3Bucket != "vfs-content" {
		t.Errorf("Content.S3Bucket = %q, want %q", got.Content.S3Bucket, "vfs-content")
	}
	if !got.Content.Encrypted {
		t.Error("Content.Encrypted = false, want true")
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
	if got.Encryption.PrivateKeyPath != original.Encryption.PrivateKeyPath {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", got.Encryption.PrivateKeyPath, original.Encryption.PrivateKeyPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/vfs")

	if cfg.BaseDir != "/data/vfs" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/vfs")
	}
	if cfg.LogDir != "/data/vfs/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/vfs/log")
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "sqlite")
	}
	if cfg.Database.DataDir != "/data/vfs/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/vfs/db")
	}
	if cfg.Content.Type != "filesystem" {
		t.Errorf("Content.Type = %q, want %q", cfg.Content.Type, "filesystem")
	}
	if cfg.Content.FSRoot != "/data/vfs/content" {
		t.Errorf("Content.FSRoot = %q, want %q", cfg.Content.FSRoot, "/data/vfs/content")
	}
	if cfg.Encryption.PublicKeyPath != "/data/vfs/keys/vfs.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/vfs/keys/vfs.pub")
	}
	if cfg.Encryption.PrivateKeyPath != "/data/vfs/keys/vfs.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", cfg.Encryption.PrivateKeyPath, "/data/vfs/keys/vfs.key")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vfs.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vfs.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vfs.toml")
		cfg := NewConfig(dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/vfs.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
