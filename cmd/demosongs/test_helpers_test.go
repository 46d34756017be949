package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demosongs/internal/config"
	"demosongs/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("YOUTUBE_API_KEY", "")

	configPath := filepath.Join(homeDir, ".config", "demosongs", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	quoted := make([]string, len(cfg.YouTube.ChannelIDs))
	for i, id := range cfg.YouTube.ChannelIDs {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	content := fmt.Sprintf(`[youtube]
api_key = %q
base_url = %q
channel_ids = [%s]
requests_per_second = 1000
timeout_seconds = 5

[paths]
data_dir = %q
output_file = %q
debug_dir = %q

[cache]
enabled = %t
path = %q

[logging]
level = "error"
`,
		cfg.YouTube.APIKey,
		cfg.YouTube.BaseURL,
		strings.Join(quoted, ", "),
		cfg.Paths.DataDir,
		cfg.Paths.OutputFile,
		cfg.Paths.DebugDir,
		cfg.Cache.Enabled,
		cfg.Cache.Path,
	)
	testsupport.WriteFile(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
