package layout

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover finds the source images under root according to l.
//
// Files are visited in lexical order. Non-PNG files are ignored, as is
// anything l does not accept. When an overlay.png (in any letter case) sits in the same folder as
// a source, its path is recorded in Source.OverlayPath.
//
// # Errors
//
//   - Returns error if root does not exist or is not a directory
//   - Returns error if a folder cannot be read during the walk
func Discover(root string, l Layout) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a folder", root)
	}

	var sources []Source
	overlays := make(map[string]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !l.Recursive() {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPNG(filepath.Ext(path)) {
			return nil
		}

		src, ok := l.Accept(path)
		if !ok {
			return nil
		}
		src.OverlayPath = overlayFor(src.Dir(), overlays)
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return sources, nil
}

// overlayFor returns the overlay path for dir, memoizing the lookup. The
// name is matched without regard to case; an exact OverlayName wins when a
// case-sensitive filesystem holds more than one spelling.
func overlayFor(dir string, seen map[string]string) string {
	if p, ok := seen[dir]; ok {
		return p
	}

	p := ""
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || !isPNG(ext) || !IsOverlay(strings.TrimSuffix(name, ext)) {
			continue
		}
		if p == "" || name == OverlayName {
			p = filepath.Join(dir, name)
		}
	}
	seen[dir] = p
	return p
}
