package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/version"
)

type (
	// Entry describes one file of a bundle.
	Entry struct {
		Name    string `json:"name"`    // record name
		Size    int    `json:"size"`    // content size in bytes
		SHA256  string `json:"sha256"`  // hex digest of the content
		Address string `json:"address"` // short bucketed content address
	}
	// Metadata summarizes a bundle.
	Metadata struct {
		TxtbundleVersion string  `json:"txtbundle_version"`
		WireVersion      int     `json:"wire_version"`
		Strategy         string  `json:"strategy"`
		FileCount        int     `json:"file_count"`
		TotalSize        int     `json:"total_size"`
		Entries          []Entry `json:"entries"`
	}
)

// GenerateMetadata builds the Metadata for b as framed with strategy s.
func GenerateMetadata(b bundle.Bundle, s bundle.Strategy) Metadata {
	m := Metadata{
		TxtbundleVersion: version.GetVersion(),
		WireVersion:      bundle.WireVersion,
		Strategy:         s.String(),
		FileCount:        len(b),
		TotalSize:        b.Size(),
		Entries:          make([]Entry, 0, len(b)),
	}
	for _, rec := range b {
		hash := ContentHash(rec.Content)
		m.Entries = append(m.Entries, Entry{
			Name:    rec.Name,
			Size:    len(rec.Content),
			SHA256:  hash,
			Address: ContentAddress(hash),
		})
	}
	return m
}

// Iterate yields entries in bundle order.
func (m Metadata) Iterate(yield func(Entry) bool) {
	for _, e := range m.Entries {
		if !yield(e) {
			return
		}
	}
}

// Save writes m as JSON. A path without a .json suffix is treated as a
// directory and the file is named metadata.json.
func (m Metadata) Save(path string) error {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, "metadata.json")
	}
	return WriteJSONFile(path, m)
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	je := json.NewEncoder(f)
	je.SetIndent("", "  ")
	return je.Encode(v)
}
