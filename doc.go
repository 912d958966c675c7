// Package hlfs provides a thin, typed layer over descriptor-level file I/O.
//
// The package does not perform syscalls itself. Everything goes through a
// [LowLevelFileSystem] injected at construction time; the lowlevel package
// ships implementations backed by the kernel (x/sys/unix), go-billy
// filesystems and blob stores.
//
// # Quick Start
//
//	fsys := hlfs.New(lowlevel.NewUnixFS())
//
//	f, err := fsys.Open(fsys.NewPath("/etc/hostname"))
//	if err != nil { ... }
//	defer f.Close()
//
//	buf, _ := hlfs.NewBuffer(4096)
//	n, err := f.Read(buf)
//	if err != nil { ... }
//	_ = buf.Limit(n) // narrow the window to what was read
//	fmt.Printf("%s", buf.Window())
//
// # Buffers
//
// A [Buffer] has a fixed capacity and a logical window [Start, End]. Reads
// fill the window; Limit narrows it once the transfer size is known. The
// asynchronous read path narrows the window itself before the completion
// callback runs, the synchronous one returns the count and leaves the window
// alone.
//
// Appends (AddBytes, AddByte, Write) use a separate write cursor and fail
// with [ErrBufferFull] instead of overwriting data.
//
// # Asynchronous I/O
//
// AsyncRead and AsyncWrite take callbacks that run exactly once, on whatever
// goroutine the capability completes on. ReadAsync and WriteAsync wrap them
// in a [Completion] for channel-based waiting:
//
//	c := f.ReadAsync(buf)
//	n, err := c.Wait(ctx)
//
// # Errors
//
// Path and file failures are returned as [*FileError] values that match one
// of the sentinel errors through errors.Is:
//
//	_, err := fsys.Open(fsys.NewPath("some/dir"))
//	if errors.Is(err, hlfs.ErrPathNotRegularFile) { ... }
//
// Nothing is retried and nothing is swallowed.
//
// # Thread Safety
//
// FileSystem and Path are safe for concurrent use if the capability is.
// File and Buffer values need external synchronization.
package hlfs
