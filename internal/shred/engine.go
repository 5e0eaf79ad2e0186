// Package shred overwrites a file in place and then unlinks it.
//
// The pattern is fixed: one pass of ASCII 'x' followed by one pass of zero
// bytes, each exactly as long as the file was when it was opened. It is not a
// multi-pass forensic erasure standard.
package shred

import (
	"io"
	"os"

	serr "sxredder/internal/errors"
	"sxredder/internal/log"
)

const (
	// FillPattern is the byte written by the first pass
	FillPattern byte = 'x'
	// ZeroPattern is the byte written by the second pass
	ZeroPattern byte = 0

	chunkSize = 32 * 1024
)

// File is the subset of *os.File the engine writes through
type File interface {
	io.WriterAt
	io.Closer
	Stat() (os.FileInfo, error)
	Sync() error
}

// Filesystem opens and removes files for the engine. OS is the real one;
// tests substitute recorders and failure injectors.
type Filesystem interface {
	OpenReadWrite(path string) (File, error)
	Remove(path string) error
}

type osFilesystem struct{}

func (osFilesystem) OpenReadWrite(path string) (File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (osFilesystem) Remove(path string) error {
	return os.Remove(path)
}

// OS is the filesystem of the running process
var OS Filesystem = osFilesystem{}

// PassReport describes one overwrite pass
type PassReport struct {
	Pattern byte
	Written int64
}

// Report describes a completed erase
type Report struct {
	Path   string
	Size   int64
	Passes []PassReport
}

// Engine performs erasures
type Engine struct {
	fs     Filesystem
	logger *log.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithFilesystem replaces the filesystem the engine uses
func WithFilesystem(fs Filesystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger injects the logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine backed by the OS filesystem
func New(opts ...Option) *Engine {
	e := &Engine{fs: OS, logger: log.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Erase overwrites path twice and removes it.
//
// A failure while opening or overwriting returns an EraseFailed error and the
// file is left in place, possibly partially overwritten. A failure to remove
// the name after both passes returns an UnlinkFailed error; the content is
// already gone at that point. Callers must not retry: the length would be
// measured again from a file that no longer holds the original data.
func (e *Engine) Erase(path string) (Report, error) {
	logger := e.logger.With(log.F("path", path))
	report := Report{Path: path}

	f, err := e.fs.OpenReadWrite(path)
	if err != nil {
		return report, serr.NewEraseError(path, 0, 0, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return report, serr.NewEraseError(path, 0, 0, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return report, serr.NewEraseError(path, 0, 0, serr.ErrNotAFile)
	}
	size := info.Size()
	report.Size = size

	for i, pattern := range []byte{FillPattern, ZeroPattern} {
		pass := i + 1
		written, err := overwrite(f, pattern, size)
		report.Passes = append(report.Passes, PassReport{Pattern: pattern, Written: written})
		if err != nil {
			f.Close()
			return report, serr.NewEraseError(path, pass, written, err)
		}
		logger.With(log.F("pass", pass), log.F("written", written)).Debug("overwrite pass complete")
	}

	if err := f.Close(); err != nil {
		return report, serr.NewEraseError(path, 2, size, err)
	}

	if err := e.fs.Remove(path); err != nil {
		return report, serr.NewUnlinkError(path, err)
	}

	logger.With(log.F("size", size)).Info("file shredded")
	return report, nil
}

// overwrite writes size copies of pattern from offset 0 and syncs.
func overwrite(f File, pattern byte, size int64) (int64, error) {
	buf := make([]byte, min(int64(chunkSize), size))
	for i := range buf {
		buf[i] = pattern
	}

	var written int64
	for written < size {
		chunk := buf[:min(int64(len(buf)), size-written)]
		n, err := f.WriteAt(chunk, written)
		written += int64(n)
		if err != nil {
			return written, err
		}
		if n < len(chunk) {
			return written, io.ErrShortWrite
		}
	}
	if err := f.Sync(); err != nil {
		return written, err
	}
	return written, nil
}
