package util

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dendrascience/txtbundle/bundle"
)

func readDirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s) failed: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOSReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	os.WriteFile(path, []byte{0x00, 0x0A, 0xFF}, 0644)

	got, err := OSReader{}.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "\x00\n\xff" {
		t.Errorf("ReadFile() = %q", got)
	}

	if _, err := (OSReader{}).ReadFile(dir); err != ErrExpectedFile {
		t.Errorf("ReadFile(dir) error = %v, want ErrExpectedFile", err)
	}
	if _, err := (OSReader{}).ReadFile(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("ReadFile(missing) error = %v, want not-exist", err)
	}
}

func TestDirWriter_WriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	b := bundle.Bundle{
		{Name: "a.txt", Content: []byte("hello")},
		{Name: "b.bin", Content: []byte{0x00, 0x0A, 0xFF}},
		{Name: "empty", Content: nil},
	}

	if err := (DirWriter{}).WriteFiles(dir, b); err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}

	for _, rec := range b {
		got, err := os.ReadFile(filepath.Join(dir, rec.Name))
		if err != nil {
			t.Fatalf("ReadFile(%s) failed: %v", rec.Name, err)
		}
		if string(got) != string(rec.Content) {
			t.Errorf("%s content = %q, want %q", rec.Name, got, rec.Content)
		}
	}

	// Staging directory must be gone
	for _, name := range readDirNames(t, dir) {
		if strings.HasPrefix(name, StagingPrefix) {
			t.Errorf("staging directory %s left behind", name)
		}
	}
}

func TestDirWriter_ConflictLeavesDirUntouched(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("existing"), 0644)

	b := bundle.Bundle{
		{Name: "a.txt", Content: []byte("new a")},
		{Name: "b.txt", Content: []byte("new b")},
	}
	err := DirWriter{}.WriteFiles(dir, b)
	if !errors.Is(err, ErrPathConflict) {
		t.Fatalf("WriteFiles() error = %v, want ErrPathConflict", err)
	}
	var writeErr *WriteError
	if !errors.As(err, &writeErr) || writeErr.Path != filepath.Join(dir, "b.txt") {
		t.Errorf("WriteFiles() error = %v, want WriteError for b.txt", err)
	}

	names := readDirNames(t, dir)
	if len(names) != 1 || names[0] != "b.txt" {
		t.Errorf("directory contents = %v, want only b.txt", names)
	}
	content, _ := os.ReadFile(filepath.Join(dir, "b.txt"))
	if string(content) != "existing" {
		t.Errorf("existing file overwritten: %q", content)
	}
}

func TestDirWriter_Overwrite(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old"), 0644)

	err := DirWriter{Overwrite: true}.WriteFiles(dir, bundle.Bundle{{Name: "a.txt", Content: []byte("new")}})
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	content, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(content) != "new" {
		t.Errorf("a.txt = %q, want new", content)
	}
	if names := readDirNames(t, dir); len(names) != 1 {
		t.Errorf("directory contents = %v, want only a.txt", names)
	}
}

func TestDirWriter_DirectoryTargetConflicts(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "a.txt"), 0755)

	err := DirWriter{Overwrite: true}.WriteFiles(dir, bundle.Bundle{{Name: "a.txt", Content: []byte("x")}})
	if !errors.Is(err, ErrPathConflict) {
		t.Errorf("WriteFiles() error = %v, want ErrPathConflict", err)
	}
}

func TestDirWriter_OutputIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	os.WriteFile(path, []byte("x"), 0644)

	err := DirWriter{}.WriteFiles(path, bundle.Bundle{{Name: "a", Content: nil}})
	if err == nil {
		t.Fatal("WriteFiles() into a file succeeded, want error")
	}
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("WriteFiles() error type = %T, want *WriteError", err)
	}
}

func TestDirWriter_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	os.Mkdir(locked, 0o555)
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	err := DirWriter{}.WriteFiles(locked, bundle.Bundle{{Name: "a", Content: []byte("x")}})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("WriteFiles() error = %v, want ErrPermissionDenied", err)
	}
	if names := readDirNames(t, locked); len(names) != 0 {
		t.Errorf("locked directory contents = %v, want empty", names)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.txt")
	os.WriteFile(path, []byte("old"), 0644)

	if err := WriteFileAtomic(path, []byte("new content"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "new content" {
		t.Errorf("content = %q, want %q", content, "new content")
	}
	if names := readDirNames(t, dir); len(names) != 1 {
		t.Errorf("directory contents = %v, want only bundle.txt", names)
	}

	err := WriteFileAtomic(filepath.Join(dir, "missing", "x"), nil, 0644)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("WriteFileAtomic(missing dir) error = %v, want *WriteError", err)
	}
}

func TestDirWriter_OverwriteWithBackupLikeName(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old"), 0644)

	b := bundle.Bundle{
		{Name: "a.txt", Content: []byte("new")},
		{Name: ".replaced", Content: []byte("x")},
		{Name: ".bak", Content: []byte("y")},
	}
	if err := (DirWriter{Overwrite: true}).WriteFiles(dir, b); err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	for _, rec := range b {
		got, _ := os.ReadFile(filepath.Join(dir, rec.Name))
		if string(got) != string(rec.Content) {
			t.Errorf("%s content = %q, want %q", rec.Name, got, rec.Content)
		}
	}
	for _, name := range readDirNames(t, dir) {
		if strings.HasPrefix(name, StagingPrefix) {
			t.Errorf("staging entry %s left behind", name)
		}
	}
}

func TestDirWriter_FailureRemovesCreatedDirs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "new", "nested")

	// A record whose parent is missing in the staging directory cannot be written
	b := bundle.Bundle{
		{Name: "a.txt", Content: []byte("a")},
		{Name: filepath.Join("missing", "b.txt"), Content: []byte("b")},
	}
	if err := (DirWriter{}).WriteFiles(dir, b); err == nil {
		t.Fatal("WriteFiles() succeeded, want error")
	}
	if names := readDirNames(t, root); len(names) != 0 {
		t.Errorf("root contents = %v, want empty", names)
	}

	// Directories that already existed are kept
	existing := filepath.Join(root, "kept")
	os.Mkdir(existing, 0755)
	os.WriteFile(filepath.Join(existing, "a.txt"), []byte("old"), 0644)
	err := DirWriter{}.WriteFiles(filepath.Join(existing, "out"), bundle.Bundle{
		{Name: filepath.Join("missing", "b.txt"), Content: []byte("b")},
	})
	if err == nil {
		t.Fatal("WriteFiles() succeeded, want error")
	}
	if names := readDirNames(t, existing); len(names) != 1 || names[0] != "a.txt" {
		t.Errorf("existing contents = %v, want only a.txt", names)
	}
}
