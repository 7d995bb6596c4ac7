package bundlefs

import (
	"context"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
)

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// FS is a read-only filesystem exposing the records of one decoded bundle
// as a flat directory.
type FS struct {
	root    *Dir
	files   []*File
	byName  map[string]*File
	modTime time.Time
}

// NewFS builds the node tree for b. Every file reports modTime as its
// modification time.
func NewFS(b bundle.Bundle, modTime time.Time) *FS {
	inodes := util.NewInodeAllocator()
	filesystem := &FS{
		files:   make([]*File, 0, len(b)),
		byName:  make(map[string]*File, len(b)),
		modTime: modTime,
	}
	filesystem.root = &Dir{fs: filesystem}
	for _, rec := range b {
		f := &File{
			fs:     filesystem,
			inode:  inodes.Next(),
			record: rec,
		}
		filesystem.files = append(filesystem.files, f)
		filesystem.byName[rec.Name] = f
	}
	return filesystem
}

// Load reads and decodes the bundle at path. The bundle file's own mtime
// becomes the mtime of every node.
func Load(path string) (*FS, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, util.ErrExpectedFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := bundle.Decode(data)
	if err != nil {
		return nil, err
	}
	return NewFS(b, info.ModTime()), nil
}

// Len returns the number of files in the filesystem.
func (f *FS) Len() int { return len(f.files) }

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return f.root, nil
}

// Dir is the single directory of the filesystem.
type Dir struct {
	fs *FS
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = util.RootInode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.modTime
	a.Ctime = d.fs.modTime
	a.Atime = d.fs.modTime
	return nil
}

// Lookup resolves a record name to its file node
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if f, ok := d.fs.byName[name]; ok {
		return f, nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists the records in bundle order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries := make([]fuse.Dirent, 0, len(d.fs.files))
	for _, f := range d.fs.files {
		entries = append(entries, fuse.Dirent{
			Inode: f.inode,
			Name:  f.record.Name,
			Type:  fuse.DT_File,
		})
	}
	return entries, nil
}

// File is one bundle record. Content is served from memory.
type File struct {
	fs     *FS
	inode  uint64
	record bundle.FileRecord
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0o444
	a.Size = uint64(len(f.record.Content))
	a.Mtime = f.fs.modTime
	a.Ctime = f.fs.modTime
	a.Atime = f.fs.modTime
	return nil
}

func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.record.Content, nil
}
