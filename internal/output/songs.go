package output

import (
	"fmt"
	"strings"

	"demosongs/internal/fileutil"
)

// WriteSongs writes titles to path joined by "\n" with no trailing newline.
// The file is replaced atomically and parent directories are created.
func WriteSongs(path string, titles []string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("songs output path required")
	}
	if err := fileutil.WriteFileAtomic(path, []byte(strings.Join(titles, "\n")), 0o644); err != nil {
		return fmt.Errorf("write songs file: %w", err)
	}
	return nil
}
