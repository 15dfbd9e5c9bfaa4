package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"daspub/internal/testsupport"
)

func TestCheckWritableDirectory_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckWritableDirectory("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckReadableDirectory_NotExist(t *testing.T) {
	result := CheckReadableDirectory("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || !result.Missing {
		t.Fatalf("expected missing failure, got %+v", result)
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckReadableDirectory_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadableDirectory("test", f)
	if result.Passed || result.Missing {
		t.Fatalf("expected failure for file path, got %+v", result)
	}
}

func TestCheckWritableDirectory_ReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckWritableDirectory("test", dir); result.Passed {
		t.Fatal("expected failure for read-only dir")
	}
	if result := CheckReadableDirectory("test", dir); !result.Passed {
		t.Fatalf("expected read-only dir to be listable, got: %s", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}

	missing := filepath.Join(t.TempDir(), "missing")
	cfg := testsupport.NewConfig(t, testsupport.WithArchivePaths(t.TempDir(), missing))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := RunAll(cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	names := []string{"Archive", "Archive", "Catalog directory", "Log directory"}
	for i, want := range names {
		if results[i].Name != want {
			t.Fatalf("result %d: got %q, want %q", i, results[i].Name, want)
		}
	}
	if !results[0].Passed || !results[1].Missing {
		t.Fatalf("unexpected archive results %+v", results[:2])
	}
	if Failed(results) {
		t.Fatalf("missing archive root should not fail preflight: %+v", results)
	}

	cfg.Logging.Dir = filepath.Join(t.TempDir(), "nolog")
	if !Failed(RunAll(cfg)) {
		t.Fatal("expected missing log directory to fail preflight")
	}
}
