package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:  "/home/user/.local/share/vorlesungen",
		LogDir:   "/home/user/.local/share/vorlesungen/log",
		Passcode: "0810",
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/vorlesungen/db"},
		Blob: BlobConfig{
			Type:       "s3",
			S3Endpoint: "localhost:9000",
			S3Bucket:   "course-pdfs",
			S3Region:   "us-east-1",
			S3UseSSL:   true,
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
	if got.Passcode != "0810" {
		t.Errorf("Passcode = %q, want %q", got.Passcode, "0810")
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Database.DataDir != original.Database.DataDir {
		t.Errorf("Database.DataDir = %q, want %q", got.Database.DataDir, original.Database.DataDir)
	}
	if got.Blob.Type != "s3" {
		t.Errorf("Blob.Type = %q, want %q", got.Blob.Type, "s3")
	}
	if got.Blob.S3Endpoint != "localhost:9000" {
		t.Errorf("Blob.S3Endpoint = %q, want %q", got.Blob.S3Endpoint, "localhost:9000")
	}
	if !got.Blob.S3UseSSL {
		t.Error("Blob.S3UseSSL = false, want true")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/vorlesungen")

	if cfg.BaseDir != "/data/vorlesungen" {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.LogDir != filepath.Join("/data/vorlesungen", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want sqlite", cfg.Database.Type)
	}
	if cfg.Blob.Type != "filesystem" {
		t.Errorf("Blob.Type = %q, want filesystem", cfg.Blob.Type)
	}
	if cfg.Blob.FSRoot != filepath.Join("/data/vorlesungen", "blobs") {
		t.Errorf("Blob.FSRoot = %q", cfg.Blob.FSRoot)
	}
	if cfg.Passcode != "" {
		t.Errorf("Passcode = %q, want empty (gate disabled by default)", cfg.Passcode)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates a readable config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "vorlesungen.toml")
		cfg := NewConfig("/data/vorlesungen")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BaseDir != cfg.BaseDir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, cfg.BaseDir)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vorlesungen.toml")
		if err := os.WriteFile(path, []byte("base_dir = \"x\"\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := Init(path, NewConfig("/data")); err == nil {
			t.Error("Init() expected error for existing config")
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("ReadFromFile() expected error for missing file")
	}
}
