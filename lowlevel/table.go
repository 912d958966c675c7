package lowlevel

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// table maps descriptors to open handles. New descriptors take the lowest
// free number at or above first, like POSIX open.
type table[T any] struct {
	mu      sync.Mutex
	used    *roaring.Bitmap
	entries map[int]T
	first   int
}

func newTable[T any](first int) *table[T] {
	return &table[T]{
		used:    roaring.New(),
		entries: make(map[int]T),
		first:   first,
	}
}

func (t *table[T]) insert(v T) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := t.first
	it := t.used.Iterator()
	it.AdvanceIfNeeded(uint32(fd))
	for it.HasNext() && int(it.Next()) == fd {
		fd++
	}

	t.used.Add(uint32(fd))
	t.entries[fd] = v
	return fd
}

func (t *table[T]) get(fd int) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[fd]
	return v, ok
}

func (t *table[T]) remove(fd int) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[fd]
	if ok {
		delete(t.entries, fd)
		t.used.Remove(uint32(fd))
	}
	return v, ok
}

func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return int(t.used.GetCardinality())
}
