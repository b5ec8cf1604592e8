package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

var errSinkClosed = errors.New("sink is closed")

// fileSink writes formatted lines to a size/count-bounded rotating file.
// The active file lives at path; backups carry a numeric suffix before the
// final extension (dashcam.log, dashcam.1.log, dashcam.2.log, ...), newest
// first, at most maxFiles files in total. Writes are buffered; entries at
// Info and above are flushed through immediately, so only Trace/Debug can
// sit in the buffer between flushes.
type fileSink struct {
	mu       sync.Mutex
	name     string
	path     string
	maxSize  int64
	maxFiles int
	pat      *pattern
	onRotate func(logger, path string, backups int)

	f      *os.File
	w      *bufio.Writer
	size   int64
	closed bool
}

// newFileSink creates missing parent directories and opens the active
// file. Directory or file creation failure is a fatal assembly error.
func newFileSink(cfg SinkConfig, pat *pattern, onRotate func(string, string, int)) (*fileSink, error) {
	if dir := filepath.Dir(cfg.FilePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	s := &fileSink{
		name:     cfg.Name,
		path:     cfg.FilePath,
		maxSize:  cfg.MaxFileSize,
		maxFiles: cfg.MaxFiles,
		pat:      pat,
		onRotate: onRotate,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSink) open() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	s.f = f
	s.w = bufio.NewWriter(f)
	s.size = info.Size()
	return nil
}

func (s *fileSink) kind() string { return "file" }

func (s *fileSink) write(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSinkClosed
	}

	line := s.pat.render(make([]byte, 0, 128), e, e.Level.String())
	line = append(line, '\n')

	// Rotate before the write that would push the active file past its
	// bound. An empty file takes the line regardless, so a single
	// oversized line overshoots rather than rotating forever.
	if s.size > 0 && s.size+int64(len(line)) > s.maxSize {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	n, err := s.w.Write(line)
	s.size += int64(n)
	if err != nil {
		return err
	}
	if e.Level >= SeverityInfo {
		return s.w.Flush()
	}
	return nil
}

// rotate is called with the mutex held; no other write to this sink can
// interleave with the rename sequence.
func (s *fileSink) rotate() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}

	if s.maxFiles == 1 {
		// No backups kept; the active file is simply replaced.
		os.Remove(s.path)
	} else {
		os.Remove(s.backupPath(s.maxFiles - 1))
		for k := s.maxFiles - 2; k >= 1; k-- {
			from := s.backupPath(k)
			if _, err := os.Stat(from); err == nil {
				os.Rename(from, s.backupPath(k+1))
			}
		}
		if err := os.Rename(s.path, s.backupPath(1)); err != nil {
			return fmt.Errorf("rotating log file: %w", err)
		}
	}

	if err := s.open(); err != nil {
		return err
	}
	if s.onRotate != nil {
		s.onRotate(s.name, s.path, s.maxFiles-1)
	}
	return nil
}

// backupPath inserts the numeric suffix before the final extension:
// logs/dashcam.log -> logs/dashcam.2.log.
func (s *fileSink) backupPath(k int) string {
	ext := filepath.Ext(s.path)
	base := s.path[:len(s.path)-len(ext)]
	return base + "." + strconv.Itoa(k) + ext
}

// flush forces buffered output through to the OS and syncs the file, so
// everything written before the call is durable when it returns.
func (s *fileSink) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSinkClosed
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Sync()
}

func (s *fileSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	if err := s.f.Sync(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
