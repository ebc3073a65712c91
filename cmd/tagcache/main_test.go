package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, prefix, verbose = "", "", false
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tagcache.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPingDisabledStore(t *testing.T) {
	path := writeConfig(t, "prefix: app\ndisabled: true\n")
	out, err := run(t, "--config", path, "ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if strings.TrimSpace(out) != "disabled" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestResetTagsOnDisabledStorePrintsStamps(t *testing.T) {
	path := writeConfig(t, "prefix: app\ndisabled: true\n")
	out, err := run(t, "--config", path, "reset-tags", "user-list", "user-42")
	if err != nil {
		t.Fatalf("reset-tags: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "user-42\t") || !strings.HasPrefix(lines[1], "user-list\t") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMissingPrefixFails(t *testing.T) {
	t.Setenv("TAGCACHE_PREFIX", "")
	path := writeConfig(t, "disabled: true\n")
	if _, err := run(t, "--config", path, "ping"); err == nil {
		t.Fatalf("expected error without prefix")
	}
}

func TestFlushRequiresConfirmation(t *testing.T) {
	if _, err := run(t, "--prefix", "app", "flush"); err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
}

func TestResetTagsNeedsArgs(t *testing.T) {
	if _, err := run(t, "--prefix", "app", "reset-tags"); err == nil {
		t.Fatalf("expected argument error")
	}
}
