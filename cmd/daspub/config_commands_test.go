package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, env.tree.Root+" (read ok)")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsBadLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected invalid --log-level to fail")
	}
}

func TestConfigValidateWarnsOnMissingArchive(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := *env.cfg
	missing := filepath.Join(t.TempDir(), "not-yet")
	cfg.Archive.Paths = []string{missing}
	path := filepath.Join(t.TempDir(), "missing.toml")
	writeTestConfig(t, path, &cfg)

	out, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err != nil {
		t.Fatalf("missing archive root should only warn: %v", err)
	}
	requireContains(t, out, "[WARN] "+missing+" (error: does not exist)")
	requireContains(t, out, "Configuration valid")
}
