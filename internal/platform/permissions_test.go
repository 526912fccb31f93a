package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestChmod(t *testing.T) {
	fs := afero.NewOsFs()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "br")
	if err := os.WriteFile(path, []byte("binary"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fs, path, 0755); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0755 {
			t.Errorf("permissions = %o, want %o", perm, 0755)
		}
	}
}

func TestChmodMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/build-linux-amd64/br", []byte("binary"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fs, "/build-linux-amd64/br", 0700); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := fs.Stat("/build-linux-amd64/br")
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("permissions = %o, want %o", perm, 0700)
		}
	}
}

func TestChmodMissingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Chmod is a no-op on Windows")
	}
	if err := Chmod(afero.NewMemMapFs(), "/nope", 0755); err == nil {
		t.Error("expected error for missing file")
	}
}
