package hlfs

// Path is a filesystem path bound to a low-level capability.
// Every query is delegated; nothing is cached.
type Path struct {
	path     string
	lowLevel LowLevelFileSystem
}

// String returns the path as given.
func (p Path) String() string { return p.path }

// Exists reports whether anything exists at the path.
func (p Path) Exists() bool { return p.lowLevel.Exists(p.path) }

// IsDirectory reports whether the path is a directory.
func (p Path) IsDirectory() bool { return p.lowLevel.IsDirectory(p.path) }

// IsRegularFile reports whether the path is a regular file.
func (p Path) IsRegularFile() bool { return p.lowLevel.IsRegularFile(p.path) }
