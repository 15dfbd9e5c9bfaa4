package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"daspub/internal/config"
	"daspub/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	tree       *testsupport.ArchiveTree
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	home := testsupport.MkdirAll(t, filepath.Join(t.TempDir(), "home"))
	t.Setenv("HOME", home)
	t.Setenv("DASPUB_ARCHIVE_PATHS", "")

	tree := testsupport.NewArchiveTree(t)
	tree.Course("Architecture", "101-Design Studio", "==Description\nFirst year studio\n==Instructors\nJane Doe * John Roe\n==CACB Criteria\nA1 - Research * Collaboration\n")
	tree.Assignment("Architecture", "101-Design Studio", "Poster",
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "S-1", "High Pass"),
		testsupport.SubmissionRow("2024", "Bob", "bob.mp4", "S-2", "Low Pass"),
	)
	tree.Course("Architecture", "102-Drawing", "==Description\nDrawing\n")
	tree.Assignment("Architecture", "102-Drawing", "Sketch")
	tree.Dir("Landscape", "201-Gardens")

	cfg := testsupport.NewConfig(t, testsupport.WithArchiveTree(tree))
	configPath := filepath.Join(home, ".config", "daspub", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, tree: tree, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
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
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
