package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dendrascience/txtbundle/bundle"
)

func TestGenerateMetadata(t *testing.T) {
	b := bundle.Bundle{
		{Name: "hello.txt", Content: []byte("hello world")},
		{Name: "empty", Content: nil},
	}
	m := GenerateMetadata(b, bundle.EscapedSentinel)

	if m.FileCount != 2 || m.TotalSize != 11 {
		t.Errorf("FileCount = %d, TotalSize = %d; want 2, 11", m.FileCount, m.TotalSize)
	}
	if m.Strategy != "sentinel" || m.WireVersion != bundle.WireVersion {
		t.Errorf("Strategy = %q, WireVersion = %d", m.Strategy, m.WireVersion)
	}
	if m.TxtbundleVersion == "" {
		t.Error("TxtbundleVersion is empty")
	}

	var names []string
	for e := range m.Iterate {
		names = append(names, e.Name)
	}
	if len(names) != 2 || names[0] != "hello.txt" || names[1] != "empty" {
		t.Errorf("Iterate() names = %v", names)
	}
	if got := m.Entries[0].SHA256; got != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("Entries[0].SHA256 = %s", got)
	}
	if got := m.Entries[0].Address; got != ContentAddress(m.Entries[0].SHA256) {
		t.Errorf("Entries[0].Address = %s", got)
	}
}

func TestMetadata_Save(t *testing.T) {
	dir := t.TempDir()
	m := GenerateMetadata(bundle.Bundle{{Name: "a", Content: []byte("1")}}, bundle.LengthPrefixed)

	if err := m.Save(dir); err != nil {
		t.Fatalf("Save(dir) error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		t.Fatalf("metadata.json not written: %v", err)
	}
	var back Metadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.FileCount != 1 || back.Entries[0].Name != "a" {
		t.Errorf("saved metadata = %+v", back)
	}

	explicit := filepath.Join(dir, "custom.json")
	if err := m.Save(explicit); err != nil {
		t.Fatalf("Save(file) error = %v", err)
	}
	if _, err := os.Stat(explicit); err != nil {
		t.Errorf("custom.json not written: %v", err)
	}
}

func TestInodeAllocator(t *testing.T) {
	a := NewInodeAllocator()
	first := a.Next()
	if first != RootInode+1 {
		t.Errorf("first inode = %d, want %d", first, RootInode+1)
	}

	// Concurrent calls return unique inodes
	const goroutines, perGoroutine = 20, 50
	results := make(chan uint64, goroutines*perGoroutine)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range perGoroutine {
				results <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool)
	for inode := range results {
		if seen[inode] {
			t.Fatalf("duplicate inode %d", inode)
		}
		if inode <= first {
			t.Fatalf("inode %d not above %d", inode, first)
		}
		seen[inode] = true
	}
}
