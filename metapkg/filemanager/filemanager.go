package filemanager

// FileManager answers questions about executables on the local filesystem.
type FileManager interface {
	// IsExecutable reports whether path is a regular file the current user
	// may execute. Symlinks are followed.
	IsExecutable(path string) bool
	// Locate returns the first executable among candidates, in order. When
	// none is executable the last candidate is returned so callers still have
	// a path to report.
	Locate(candidates ...string) string
}
