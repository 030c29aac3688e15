package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "in.txt")
		if err := os.WriteFile(path, []byte("x^2"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadInput(path, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "x^2" {
			t.Errorf("ReadInput() = %q, want %q", got, "x^2")
		}
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()

		got, err := ReadInput(StdinName, strings.NewReader("from stdin"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "from stdin" {
			t.Errorf("ReadInput() = %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadInput(filepath.Join(t.TempDir(), "missing"), nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q lacks extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup did not remove file")
	}
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ext     string
		wantErr error
	}{
		{name: "valid", ext: "html"},
		{name: "empty", ext: "", wantErr: ErrExtensionEmpty},
		{name: "slash", ext: "a/b", wantErr: ErrExtensionPathTraversal},
		{name: "backslash", ext: `a\b`, wantErr: ErrExtensionPathTraversal},
		{name: "null byte", ext: "a\x00", wantErr: ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateExtension(tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"dev":            false,
		"my-config":      false,
		"./dev.yaml":     true,
		"/etc/symja.yml": true,
		`C:\cfg.yaml`:    true,
	}
	for in, want := range tests {
		if got := IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists(file) = false, want true")
	}
}
