package graphcache

import (
	"os"

	"golang.org/x/sys/unix"
)

// rebuildLock is an exclusive, non-blocking file lock guarding cache
// rebuilds; readers skip it entirely since an mmap'd read is safe against
// a concurrent rename-into-place. Only one goroutine process-wide should
// hold it at a time per cache directory; singleflight already collapses
// in-process callers, so this lock's job is cross-process safety.
type rebuildLock struct {
	f *os.File
}

func acquireRebuildLock(dir string) (*rebuildLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := dir + string(os.PathSeparator) + fileLock
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, ErrLockHeld
	}
	return &rebuildLock{f: f}, nil
}

func (l *rebuildLock) release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
