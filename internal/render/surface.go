package render

import (
	"fmt"
	"os"
	"sync"
)

// Surface receives rendered frames. Present is called once per accepted
// message with a complete frame; Finish is called exactly once after the
// consumer loop terminates, leaving the last frame as the final static chart.
type Surface interface {
	Present(frame []byte) error
	Finish() error
}

// MemorySurface holds the most recent frame for the HTTP dashboard. The
// dashboard reads it from server goroutines while the loop writes, so access
// is guarded.
type MemorySurface struct {
	mu    sync.RWMutex
	frame []byte
	live  bool
}

// NewMemorySurface creates a surface in live (interactive) mode
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{live: true}
}

// Present stores the frame as the current one
func (s *MemorySurface) Present(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	return nil
}

// Finish leaves live mode; the last presented frame keeps being served
func (s *MemorySurface) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
	return nil
}

// Frame returns the most recent frame, or nil if nothing was rendered yet
func (s *MemorySurface) Frame() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Live reports whether the surface still receives frames
func (s *MemorySurface) Live() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

// FileSurface writes each frame to a PNG file on disk. Frames are written to
// a temp file and renamed so the target is never half-written.
type FileSurface struct {
	path string
}

// NewFileSurface creates a surface writing to the given path
func NewFileSurface(path string) *FileSurface {
	return &FileSurface{path: path}
}

// Present replaces the file contents with the frame
func (s *FileSurface) Present(frame []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, frame, 0o644); err != nil {
		return fmt.Errorf("write chart frame: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("publish chart frame: %w", err)
	}
	return nil
}

// Finish is a no-op; the last written file is the final static chart
func (s *FileSurface) Finish() error {
	return nil
}

// Path returns the target file path
func (s *FileSurface) Path() string {
	return s.path
}

// MultiSurface fans frames out to several surfaces. The first Present error
// aborts the fan-out; a failing surface is fatal to the loop.
type MultiSurface []Surface

// Present delivers the frame to every surface in order
func (m MultiSurface) Present(frame []byte) error {
	for _, s := range m {
		if err := s.Present(frame); err != nil {
			return err
		}
	}
	return nil
}

// Finish finishes every surface, returning the first error seen
func (m MultiSurface) Finish() error {
	var first error
	for _, s := range m {
		if err := s.Finish(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
