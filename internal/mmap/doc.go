// Package mmap maps local files read-only for blob reads.
//
//	m, err := mmap.Open("data.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	n, err := m.ReadAt(p, off)
//
// Unix builds use mmap(2) and madvise(2); Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but slices
// returned by Bytes must not be touched after it returns.
package mmap
