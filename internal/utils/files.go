package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicFile buffers writes into a temp file next to path and renames it into
// place on Commit. Abort (or a failed Commit) removes the temp file, so a
// failed run never leaves partial output behind.
type AtomicFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
	done bool
}

// CreateAtomic opens a temp file in path's directory.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &AtomicFile{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) { return a.w.Write(p) }

// Commit flushes, closes and atomically renames the temp file onto the target path.
func (a *AtomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	tmp := a.f.Name()
	if err := a.w.Flush(); err != nil {
		_ = a.f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err := a.f.Chmod(0o644); err != nil {
		_ = a.f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := a.f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Abort discards the temp file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	_ = a.f.Close()
	_ = os.Remove(a.f.Name())
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	a, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	if _, err := a.Write(data); err != nil {
		a.Abort()
		return fmt.Errorf("write temp file: %w", err)
	}
	return a.Commit()
}

// Sink is an output destination that must be committed to become visible.
type Sink interface {
	io.Writer
	Commit() error
	Abort()
}

type stdSink struct {
	w *bufio.Writer
}

func (s stdSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s stdSink) Commit() error               { return s.w.Flush() }
func (s stdSink) Abort()                      { _ = s.w.Flush() }

// OpenSink returns an atomic file for path, or a buffered wrapper around
// stdout when path is empty or "-".
func OpenSink(path string, stdout io.Writer) (Sink, error) {
	if path == "" || path == "-" {
		return stdSink{w: bufio.NewWriter(stdout)}, nil
	}
	return CreateAtomic(path)
}
