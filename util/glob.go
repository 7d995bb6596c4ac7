package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ResolveGlob expands pattern into the regular files it matches, sorted
// lexicographically so that bundle order is reproducible. Directories are
// skipped, as are matches that vanish or dangle before they can be stat'd.
// A pattern that matches nothing yields an empty list, not an error.
func ResolveGlob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return regularFiles(matches)
}

// ResolveGlobIn resolves pattern relative to dir. An empty dir means the
// current directory. It fails with ErrSearchDirNotFound if dir does not
// exist and ErrExpectedDirectory if dir is a file.
func ResolveGlobIn(dir, pattern string) ([]string, error) {
	if dir == "" || filepath.IsAbs(pattern) {
		return ResolveGlob(pattern)
	}
	if err := checkSearchDir(dir); err != nil {
		return nil, err
	}
	return ResolveGlob(filepath.Join(dir, pattern))
}

// IsRegexPattern reports whether pattern is meant as a regular expression.
// Anchored patterns ("^...") are never useful as globs.
func IsRegexPattern(pattern string) bool {
	return strings.HasPrefix(pattern, "^")
}

// ResolveRegex returns the regular files directly inside dir whose base name
// matches expr, sorted lexicographically. An empty dir means the current
// directory; returned paths are then bare names.
func ResolveRegex(dir, expr string) ([]string, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRegex, expr, err)
	}
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	} else if err := checkSearchDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		if re.MatchString(e.Name()) {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return regularFiles(matches)
}

// ResolvePattern picks regex matching when regex is set or the pattern is
// anchored, and glob matching otherwise.
func ResolvePattern(dir, pattern string, regex bool) ([]string, error) {
	if regex || IsRegexPattern(pattern) {
		return ResolveRegex(dir, pattern)
	}
	return ResolveGlobIn(dir, pattern)
}

func checkSearchDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %s: %w", ErrSearchDirNotFound, dir, err)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	return nil
}

func regularFiles(matches []string) ([]string, error) {
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
