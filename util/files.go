package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/google/uuid"
)

// StagingPrefix names the temporary directory DirWriter creates inside the
// output directory while a bundle is being written.
const StagingPrefix = ".txtbundle-"

// OSReader reads files from the local filesystem.
type OSReader struct{}

// ReadFile returns the full content of path. Directories are rejected with
// ErrExpectedFile.
func (OSReader) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrExpectedFile
	}
	return os.ReadFile(path)
}

// DirWriter writes every record of a bundle as a file in a directory, or
// none of them.
type DirWriter struct {
	// Overwrite allows replacing existing regular files.
	Overwrite bool
	// Perm is the mode of written files; zero means 0o644.
	Perm os.FileMode
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := filepath.Join(filepath.Dir(path), StagingPrefix+uuid.NewString())
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return writeErr(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return writeErr(path, err)
	}
	return nil
}

type committed struct {
	target string
	backup string
}

// WriteFiles creates dir if needed, writes all records into a staging
// directory and then moves them into place. On any error the files already
// moved are removed, replaced files are restored and directories created by
// this call are removed again.
func (w DirWriter) WriteFiles(dir string, b bundle.Bundle) (err error) {
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	created, err := mkdirAll(dir)
	if err != nil {
		return writeErr(dir, err)
	}
	defer func() {
		if err != nil {
			removeDirs(created)
		}
	}()
	info, err := os.Stat(dir)
	if err != nil {
		return writeErr(dir, err)
	}
	if !info.IsDir() {
		return &WriteError{Path: dir, Err: errors.Join(ErrPathConflict, ErrExpectedDirectory)}
	}

	if err := w.checkTargets(dir, b); err != nil {
		return err
	}

	id := uuid.NewString()
	staging := filepath.Join(dir, StagingPrefix+id)
	if err := os.Mkdir(staging, 0o700); err != nil {
		return writeErr(staging, err)
	}
	defer os.RemoveAll(staging)

	for _, rec := range b {
		if err := os.WriteFile(filepath.Join(staging, rec.Name), rec.Content, perm); err != nil {
			return writeErr(filepath.Join(dir, rec.Name), err)
		}
	}

	// Replaced files are parked outside staging so record names cannot
	// collide with the backup directory.
	backups := filepath.Join(dir, StagingPrefix+id+"-bak")
	defer os.RemoveAll(backups)
	var done []committed
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			os.Remove(done[i].target)
			if done[i].backup != "" {
				os.Rename(done[i].backup, done[i].target)
			}
		}
	}

	for _, rec := range b {
		c := committed{target: filepath.Join(dir, rec.Name)}
		if w.Overwrite {
			if _, err := os.Lstat(c.target); err == nil {
				if err := os.MkdirAll(backups, 0o700); err != nil {
					rollback()
					return writeErr(c.target, err)
				}
				c.backup = filepath.Join(backups, rec.Name)
				if err := os.Rename(c.target, c.backup); err != nil {
					rollback()
					return writeErr(c.target, err)
				}
			}
		}
		if err := os.Rename(filepath.Join(staging, rec.Name), c.target); err != nil {
			if c.backup != "" {
				os.Rename(c.backup, c.target)
			}
			rollback()
			return writeErr(c.target, err)
		}
		done = append(done, c)
	}
	return nil
}

// mkdirAll creates dir and any missing parents. It returns the directories
// it created, deepest first.
func mkdirAll(dir string) ([]string, error) {
	var missing []string
	for p := filepath.Clean(dir); ; {
		if _, err := os.Lstat(p); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		missing = append(missing, p)
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		removeDirs(missing)
		return nil, err
	}
	return missing, nil
}

// removeDirs removes each directory if it is empty.
func removeDirs(dirs []string) {
	for _, d := range dirs {
		os.Remove(d)
	}
}

// checkTargets refuses existing directories always and existing files unless
// Overwrite is set.
func (w DirWriter) checkTargets(dir string, b bundle.Bundle) error {
	for _, rec := range b {
		target := filepath.Join(dir, rec.Name)
		info, err := os.Lstat(target)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return writeErr(target, err)
		}
		if info.IsDir() {
			return &WriteError{Path: target, Err: errors.Join(ErrPathConflict, ErrExpectedFile)}
		}
		if !w.Overwrite {
			return &WriteError{Path: target, Err: errors.Join(ErrPathConflict, fs.ErrExist)}
		}
	}
	return nil
}

func writeErr(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return &WriteError{Path: path, Err: errors.Join(ErrPermissionDenied, err)}
	}
	return &WriteError{Path: path, Err: err}
}
