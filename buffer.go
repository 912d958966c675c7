package hlfs

import "fmt"

// Buffer is a fixed-capacity byte region with a logical window.
//
// The window [Start, End] starts out covering the whole storage and is
// narrowed with Limit once a transfer reports how many bytes are valid.
// Appends go through a separate write cursor that only moves forward.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	bytes       []byte
	start       int
	end         int
	maxSize     int
	currentSize int
	written     int
}

// NewBuffer allocates a zero-filled buffer of the given size with the full window open.
func NewBuffer(size int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Buffer{
		bytes:       make([]byte, size),
		start:       0,
		end:         size - 1,
		maxSize:     size,
		currentSize: size,
	}, nil
}

// Bytes returns the underlying storage (full capacity, not just the window).
func (b *Buffer) Bytes() []byte { return b.bytes }

// Start returns the first index of the logical window.
func (b *Buffer) Start() int { return b.start }

// End returns the last valid index of the logical window (inclusive).
func (b *Buffer) End() int { return b.end }

// MaxSize returns the allocated capacity.
func (b *Buffer) MaxSize() int { return b.maxSize }

// CurrentSize returns the logical window length.
func (b *Buffer) CurrentSize() int { return b.currentSize }

// Written returns the position of the write cursor.
func (b *Buffer) Written() int { return b.written }

// Remaining returns how many bytes can still be appended.
func (b *Buffer) Remaining() int { return b.maxSize - b.written }

// Window returns the bytes of the logical window. The slice aliases the storage.
func (b *Buffer) Window() []byte {
	return b.bytes[b.start : b.start+b.currentSize]
}

// Limit narrows the logical window to offset bytes starting at Start.
// Callers must not read past the new End.
func (b *Buffer) Limit(offset int) error {
	if offset > b.maxSize {
		return fmt.Errorf("%w: offset %d, capacity %d", ErrOffsetExceedsCapacity, offset, b.maxSize)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset %d", ErrIndexOutOfRange, offset)
	}
	b.end = b.start + offset - 1
	b.currentSize = offset
	return nil
}

// ReachedEnd reports whether the write cursor has reached the end of the logical window.
func (b *Buffer) ReachedEnd() bool {
	return b.written >= b.currentSize
}

// ReadBytes returns a copy of the bytes in [begin, finish).
func (b *Buffer) ReadBytes(begin, finish int) ([]byte, error) {
	if begin < 0 || begin > finish || finish > b.maxSize {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrIndexOutOfRange, begin, finish, b.maxSize)
	}
	out := make([]byte, finish-begin)
	copy(out, b.bytes[begin:finish])
	return out, nil
}

// AddBytes appends data at the write cursor. Nothing is written if data
// does not fit in the remaining capacity.
func (b *Buffer) AddBytes(data []byte) error {
	if len(data) > b.Remaining() {
		return fmt.Errorf("%w: %d bytes requested, %d remaining", ErrBufferFull, len(data), b.Remaining())
	}
	b.written += copy(b.bytes[b.written:], data)
	return nil
}

// AddByte appends a single byte at the write cursor.
func (b *Buffer) AddByte(c byte) error {
	if b.Remaining() < 1 {
		return fmt.Errorf("%w: capacity %d", ErrBufferFull, b.maxSize)
	}
	b.bytes[b.written] = c
	b.written++
	return nil
}

// Write implements io.Writer on top of AddBytes.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.AddBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
