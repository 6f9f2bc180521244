package filemanager

import (
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

type UnixFileManager struct {
	Fs afero.Fs
}

func NewUnixFileManager() *UnixFileManager {
	return &UnixFileManager{Fs: afero.NewOsFs()}
}

func (ufm *UnixFileManager) IsExecutable(path string) bool {
	if path == "" {
		return false
	}

	info, err := ufm.fs().Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	// On the real filesystem ask the kernel, which accounts for ownership
	// and ACLs. In-memory filesystems only have mode bits.
	if _, ok := ufm.fs().(*afero.OsFs); ok {
		return unix.Access(path, unix.X_OK) == nil
	}
	return info.Mode().Perm()&0o111 != 0
}

func (ufm *UnixFileManager) Locate(candidates ...string) string {
	for _, candidate := range candidates {
		if ufm.IsExecutable(candidate) {
			return candidate
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[len(candidates)-1]
}

func (ufm *UnixFileManager) fs() afero.Fs {
	if ufm.Fs == nil {
		ufm.Fs = afero.NewOsFs()
	}
	return ufm.Fs
}
