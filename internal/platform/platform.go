// Package platform abstracts the two runtime operations the rendering
// core needs from its host: writing text to the system clipboard and
// saving a generated file. Both are injected so the core is testable
// without a real terminal or filesystem and portable to any target.
package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// FileSaver persists a named file and returns where it landed.
type FileSaver interface {
	Save(name string, data []byte) (path string, err error)
}

// SystemClipboard is the default Clipboard backed by the OS clipboard.
type SystemClipboard struct{}

// WriteText writes text to the OS clipboard.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this platform")
	}
	return clipboard.WriteAll(text)
}

// DirSaver writes files into a fixed directory, creating it on first use.
type DirSaver struct {
	Dir string
}

// Save writes data under the saver's directory. Only the base of name is
// used so callers cannot escape the export directory.
func (s DirSaver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
