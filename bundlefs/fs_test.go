package bundlefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
)

func testBundle() bundle.Bundle {
	return bundle.Bundle{
		{Name: "b.txt", Content: []byte("second")},
		{Name: "a.txt", Content: []byte("first file")},
		{Name: "empty", Content: nil},
	}
}

func TestDir_ReadDirAll(t *testing.T) {
	filesystem := NewFS(testBundle(), time.Now())
	root, err := filesystem.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	entries, err := root.(*Dir).ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll() error = %v", err)
	}
	want := []string{"b.txt", "a.txt", "empty"}
	if len(entries) != len(want) {
		t.Fatalf("ReadDirAll() returned %d entries, want %d", len(entries), len(want))
	}
	seen := map[uint64]bool{util.RootInode: true}
	for i, e := range entries {
		if e.Name != want[i] || e.Type != fuse.DT_File {
			t.Errorf("entry %d = %+v, want file %s", i, e, want[i])
		}
		if seen[e.Inode] {
			t.Errorf("entry %s reuses inode %d", e.Name, e.Inode)
		}
		seen[e.Inode] = true
	}
}

func TestDir_Lookup(t *testing.T) {
	ctx := context.Background()
	filesystem := NewFS(testBundle(), time.Now())
	root, _ := filesystem.Root()
	dir := root.(*Dir)

	node, err := dir.Lookup(ctx, "a.txt")
	if err != nil {
		t.Fatalf("Lookup(a.txt) error = %v", err)
	}
	data, err := node.(*File).ReadAll(ctx)
	if err != nil || string(data) != "first file" {
		t.Errorf("ReadAll() = %q, %v; want %q", data, err, "first file")
	}

	if _, err := dir.Lookup(ctx, "missing"); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Lookup(missing) error = %v, want ENOENT", err)
	}
}

func TestAttr(t *testing.T) {
	ctx := context.Background()
	mtime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	filesystem := NewFS(testBundle(), mtime)
	root, _ := filesystem.Root()

	var dirAttr fuse.Attr
	if err := root.Attr(ctx, &dirAttr); err != nil {
		t.Fatalf("Dir.Attr() error = %v", err)
	}
	if dirAttr.Inode != util.RootInode || !dirAttr.Mode.IsDir() || dirAttr.Mode.Perm() != 0o555 {
		t.Errorf("Dir.Attr() = inode %d mode %v", dirAttr.Inode, dirAttr.Mode)
	}

	node, _ := root.(*Dir).Lookup(ctx, "b.txt")
	var fileAttr fuse.Attr
	if err := node.Attr(ctx, &fileAttr); err != nil {
		t.Fatalf("File.Attr() error = %v", err)
	}
	if fileAttr.Size != 6 || fileAttr.Mode != 0o444 || !fileAttr.Mtime.Equal(mtime) {
		t.Errorf("File.Attr() = size %d mode %v mtime %v", fileAttr.Size, fileAttr.Mode, fileAttr.Mtime)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	c, err := bundle.NewCodec(bundle.EscapedSentinel)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	data, err := bundle.EncodeStream(c, testBundle())
	if err != nil {
		t.Fatalf("EncodeStream() error = %v", err)
	}
	path := filepath.Join(dir, "bundle.txt")
	os.WriteFile(path, data, 0644)

	filesystem, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if filesystem.Len() != 3 {
		t.Errorf("Len() = %d, want 3", filesystem.Len())
	}

	os.WriteFile(path, data[:len(data)-3], 0644)
	if _, err := Load(path); !errors.Is(err, bundle.ErrTruncatedStream) {
		t.Errorf("Load(truncated) error = %v, want ErrTruncatedStream", err)
	}
	if _, err := Load(dir); err != util.ErrExpectedFile {
		t.Errorf("Load(dir) error = %v, want ErrExpectedFile", err)
	}
}
