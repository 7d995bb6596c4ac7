package util

import "sync/atomic"

// RootInode is reserved for the root directory of a mount.
const RootInode uint64 = 1

// InodeAllocator hands out unique inode numbers above RootInode.
type InodeAllocator struct {
	highest atomic.Uint64
}

// NewInodeAllocator returns an allocator whose first inode is RootInode+1.
func NewInodeAllocator() *InodeAllocator {
	a := &InodeAllocator{}
	a.highest.Store(RootInode)
	return a
}

// Next returns a fresh inode number.
func (a *InodeAllocator) Next() uint64 {
	return a.highest.Add(1)
}
