package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"demosongs/internal/songs"
)

// DumpPath returns where description index is written under dir: a "good"
// or "bad" bucket by identifier presence, then the hyphen-line piece count.
func DumpPath(dir string, tables *songs.Tables, index int, description string) string {
	bucket := "bad"
	if tables.HasIdentifier(description) {
		bucket = "good"
	}
	return filepath.Join(dir, bucket, strconv.Itoa(songs.CountPieces(description)), strconv.Itoa(index)+".txt")
}

// DumpDescriptions writes each description verbatim to its DumpPath and
// returns the number of files written.
func DumpDescriptions(dir string, tables *songs.Tables, descriptions []string) (int, error) {
	if strings.TrimSpace(dir) == "" {
		return 0, fmt.Errorf("dump directory required")
	}
	written := 0
	for index, description := range descriptions {
		path := DumpPath(dir, tables, index, description)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create dump directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(description), 0o644); err != nil {
			return written, fmt.Errorf("write description %d: %w", index, err)
		}
		written++
	}
	return written, nil
}
