package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// Sink persists generated variants. Paths passed to a Sink are relative to
// wherever the sink writes.
type Sink interface {
	// WriteImage stores img at rel.
	WriteImage(rel string, img image.Image) error

	// CopyFile copies the file at src to rel.
	CopyFile(rel, src string) error

	// Location returns where rel ends up, for logging and reports.
	Location(rel string) string
}

// DirSink writes variants as PNG files under Root, creating folders as
// needed. Existing folders are reused and existing files are overwritten.
type DirSink struct {
	Root string
}

// NewDirSink returns a sink rooted at root.
func NewDirSink(root string) *DirSink {
	return &DirSink{Root: root}
}

// Location implements Sink.
func (s *DirSink) Location(rel string) string {
	return filepath.Join(s.Root, rel)
}

// WriteImage implements Sink.
func (s *DirSink) WriteImage(rel string, img image.Image) error {
	path := s.Location(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// CopyFile implements Sink.
func (s *DirSink) CopyFile(rel, src string) error {
	path := s.Location(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
