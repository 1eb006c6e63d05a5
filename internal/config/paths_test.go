package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	root := filepath.FromSlash("/opt/server")
	paths := DefaultPaths(root)
	if paths.Root != root {
		t.Fatalf("unexpected root: %s", paths.Root)
	}
	if paths.ManifestPath != filepath.Join(root, ".distup", "manifest.toml") {
		t.Fatalf("unexpected manifest path: %s", paths.ManifestPath)
	}
	if paths.ConfigPath != filepath.Join(root, ".distup", "config.toml") {
		t.Fatalf("unexpected config path: %s", paths.ConfigPath)
	}
	if paths.LockPath != filepath.Join(root, ".distup", "update.lock") {
		t.Fatalf("unexpected lock path: %s", paths.LockPath)
	}
	if paths.ModulesDir != filepath.Join(root, "modules") {
		t.Fatalf("unexpected modules dir: %s", paths.ModulesDir)
	}
}
