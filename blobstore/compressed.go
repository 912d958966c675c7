package blobstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression applied to a blob.
type Codec uint8

const (
	// CodecNone stores blobs as-is behind the frame header.
	CodecNone Codec = 0
	// CodecLZ4 uses LZ4 block compression (fast).
	CodecLZ4 Codec = 1
	// CodecZSTD uses Zstandard (better ratio).
	CodecZSTD Codec = 2
)

// ParseCodec maps "none", "lz4" and "zstd" to a Codec.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "", "none":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZSTD, nil
	default:
		return CodecNone, fmt.Errorf("blobstore: unknown codec %q", s)
	}
}

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// Frame: [magic "HLZ"][codec uint8][rawSize uint64 LE][payload...]
const (
	frameMagic      = "HLZ"
	frameHeaderSize = 12
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// CompressedStore compresses whole blobs on write and decompresses them on
// Open. Blobs are materialized in memory while open.
type CompressedStore struct {
	inner BlobStore
	codec Codec
}

// NewCompressedStore wraps inner, writing new blobs with codec.
// Reads accept any codec found in the frame header.
func NewCompressedStore(inner BlobStore, codec Codec) *CompressedStore {
	return &CompressedStore{inner: inner, codec: codec}
}

// Open reads and decodes the whole blob.
func (s *CompressedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	framed, err := ReadAll(ctx, b)
	if err != nil {
		return nil, err
	}
	raw, err := decodeFrame(framed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, name, err)
	}
	return newBytesBlob(raw), nil
}

// Create buffers writes and stores the encoded frame on Close.
func (s *CompressedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	return &compressedWritableBlob{ctx: ctx, store: s, name: name}, nil
}

// Put encodes data and writes it to the inner store.
func (s *CompressedStore) Put(ctx context.Context, name string, data []byte) error {
	framed, err := encodeFrame(data, s.codec)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, name, framed)
}

// Exists asks the inner store; the frame is not read.
func (s *CompressedStore) Exists(ctx context.Context, name string) (bool, error) {
	return s.inner.Exists(ctx, name)
}

// Delete removes a blob.
func (s *CompressedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns all blobs matching the prefix.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type compressedWritableBlob struct {
	ctx    context.Context
	store  *CompressedStore
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *compressedWritableBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.buf.Write(p)
}

func (w *compressedWritableBlob) Sync() error {
	return nil
}

func (w *compressedWritableBlob) Abort() error {
	w.closed = true
	w.buf.Reset()
	return nil
}

func (w *compressedWritableBlob) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	return w.store.Put(w.ctx, w.name, w.buf.Bytes())
}

// encodeFrame compresses data, falling back to CodecNone when the codec
// saves less than 10%.
func encodeFrame(data []byte, codec Codec) ([]byte, error) {
	var payload []byte
	switch codec {
	case CodecNone:
	case CodecLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, err
		}
		payload = dst[:n] // n == 0 means incompressible
	case CodecZSTD:
		enc := getZstdEncoder()
		payload = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("blobstore: unknown codec %d", codec)
	}

	if len(payload) == 0 || float64(len(payload)) > float64(len(data))*0.9 {
		codec, payload = CodecNone, data
	}

	out := make([]byte, frameHeaderSize+len(payload))
	copy(out, frameMagic)
	out[3] = byte(codec)
	binary.LittleEndian.PutUint64(out[4:], uint64(len(data)))
	copy(out[frameHeaderSize:], payload)
	return out, nil
}

func decodeFrame(framed []byte) ([]byte, error) {
	if len(framed) < frameHeaderSize || string(framed[:3]) != frameMagic {
		return nil, fmt.Errorf("missing frame header")
	}
	codec := Codec(framed[3])
	rawSize := binary.LittleEndian.Uint64(framed[4:])
	payload := framed[frameHeaderSize:]

	switch codec {
	case CodecNone:
		if uint64(len(payload)) != rawSize {
			return nil, fmt.Errorf("size mismatch: header %d, payload %d", rawSize, len(payload))
		}
		return payload, nil
	case CodecLZ4:
		// LZ4 cannot expand data by more than 255x.
		if rawSize > uint64(len(payload))*255+16 {
			return nil, fmt.Errorf("implausible size %d for %d byte payload", rawSize, len(payload))
		}
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, err
		}
		if uint64(n) != rawSize {
			return nil, fmt.Errorf("size mismatch: header %d, decoded %d", rawSize, n)
		}
		return raw, nil
	case CodecZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		raw, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, err
		}
		if uint64(len(raw)) != rawSize {
			return nil, fmt.Errorf("size mismatch: header %d, decoded %d", rawSize, len(raw))
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown codec %d", codec)
	}
}
