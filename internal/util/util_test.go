package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/bookcase/internal/util"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "index.html")

	if err := util.WriteFileAtomic(dst, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := util.WriteFileAtomic(dst, []byte("again"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile dst: %v", err)
	}
	if string(got) != "again" {
		t.Errorf("content = %q, want %q", string(got), "again")
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestWriteFileAtomic_BadDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFileAtomic(filepath.Join(blocker, "out.html"), []byte("x"), 0644); err == nil {
		t.Error("expected error writing below a regular file, got nil")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := util.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	fi, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat after EnsureDir: %v", err)
	}
	if !fi.IsDir() {
		t.Error("EnsureDir path is not a directory")
	}
}
