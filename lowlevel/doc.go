// Package lowlevel provides implementations of hlfs.LowLevelFileSystem.
//
//   - UnixFS: kernel descriptors through golang.org/x/sys/unix (unix builds)
//   - BillyFS: any go-billy filesystem, in memory (memfs) or on disk (osfs)
//   - BlobFS: files stored as blobs in a blobstore.BlobStore
//   - FaultyFS: wraps another backend and injects failures for tests
//
// Ranges follow the hlfs convention: storage p plus an inclusive
// [start, end] window, where end == start-1 denotes an empty range.
//
// # Async Operations
//
// AsyncRead and AsyncWrite run on background goroutines. When Options.Resources
// is set, each transfer first takes a worker slot and IO tokens from the
// resource.Controller, so the number of in-flight transfers and their
// throughput are bounded. Completion callbacks run on the worker goroutine.
//
//	rc := resource.NewController(resource.Config{
//	    MaxBackgroundWorkers: 4,
//	    IOLimitBytesPerSec:   64 << 20,
//	})
//	ll := lowlevel.NewMemoryFS(func(o *lowlevel.Options) {
//	    o.Resources = rc
//	})
//
// Every backend has a Wait method that blocks until outstanding async
// operations have completed.
package lowlevel
