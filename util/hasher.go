package util

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/taigrr/colorhash"
)

// AddressBuckets is the number of buckets a content address is spread over.
const AddressBuckets = 1000

// GetFileHash hashes a file and returns the hash as a hex string.
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ContentHash returns the SHA-256 hex digest of content.
func ContentHash(content []byte) string {
	// reading from a bytes.Reader cannot fail
	hash, _ := GetHash(bytes.NewReader(content))
	return hash
}

// ContentAddress turns a hex digest into a short display address of the
// form "bucket-prefix" (e.g. "742-b94d27b9934d"). The bucket comes from a
// color hash of the full digest, so equal content always lands in the same
// bucket and differing content usually does not.
func ContentAddress(hash string) string {
	bucket := colorhash.HashString(hash) % AddressBuckets
	if bucket < 0 {
		bucket = -bucket
	}
	prefix := hash
	if len(prefix) > 12 {
		prefix = prefix[:12]
	}
	return fmt.Sprintf("%03d-%s", bucket, prefix)
}
