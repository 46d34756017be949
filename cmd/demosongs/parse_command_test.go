package main

import (
	"path/filepath"
	"strings"
	"testing"

	"demosongs/internal/testsupport"
)

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc.txt")
	testsupport.WriteFile(t, path, "Build notes\r\nSong List:\r\n0:00 Intro\r\n0:10 Lofi Beat - Artist One\r\n2:00 Rainy Day\r\n\r\nfooter")

	out, errOut, err := runCLI(t, []string{"parse", path}, "", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != "Lofi Beat - Artist One\nRainy Day\n" {
		t.Fatalf("unexpected titles %q", out)
	}
	requireContains(t, errOut, "strategy: identifier (3 candidates, 2 accepted)")
}

func TestParseStdinWithCandidates(t *testing.T) {
	desc := "Intro text\n---\nparts\n---\nOcean Drive\nhttp://example.com\nOcean Drive\n---\nx\n---\ny\n---\nz"

	out, errOut, err := runCLI(t, []string{"parse", "--candidates", "-"}, "", strings.NewReader(desc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, errOut, "strategy: delimiter_split")
	requireContains(t, out, "# candidates\n")
	requireContains(t, out, "empty\t\n")
	requireContains(t, out, "accepted\tOcean Drive\n")
	requireContains(t, out, "url\thttp://example.com\n")
	requireContains(t, out, "duplicate\tOcean Drive\n")
	if !strings.HasSuffix(out, "# titles\nOcean Drive\n") {
		t.Fatalf("unexpected titles section %q", out)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, _, err := runCLI(t, []string{"parse", filepath.Join(t.TempDir(), "missing.txt")}, "", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}
