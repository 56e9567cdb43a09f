package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoSamplePayload = `{"data":[{"timestamp":0,"speed":30},{"timestamp":5,"speed":45}]}`

type cliTestEnv struct {
	baseDir    string
	configPath string
	logDir     string
	historyDB  string
}

func setupCLITestEnv(t *testing.T, historyEnabled bool) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
		historyDB:  filepath.Join(base, "history.db"),
	}
	writeTestConfig(t, env, historyEnabled)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, historyEnabled bool) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
log_dir = %q

[history]
enabled = %t
path = %q
`, env.logDir, historyEnabled, env.historyDB)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func seedRecording(t *testing.T, dir, payload string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir recording: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "drive.mp4"), []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "drive.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	return dir
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
