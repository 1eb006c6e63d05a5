package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/config"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/manifest"
	"github.com/conn-castle/distup/internal/repository"
)

const installConfig = `
[[repositories]]
id = "local"
url = "repo"

[cache]
ttl_seconds = 0
`

// newTestInstallation creates an installation with org.example:a:1.0 and
// org.example:b:1.5 installed, and a repository beside it offering a:2.0
// (requiring b >= 1.5).
func newTestInstallation(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	paths := config.DefaultPaths(root)
	require.NoError(t, os.MkdirAll(paths.MetaDir, 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigPath, []byte(installConfig), 0o644))

	installed := []gav.Artifact{artifactOf(t, "org.example:a:1.0"), artifactOf(t, "org.example:b:1.5")}
	m, err := manifest.New(paths.ManifestPath, installed)
	require.NoError(t, err)
	require.NoError(t, m.Save())
	for _, a := range installed {
		writeFile(t, filepath.Join(paths.ModulesDir, "org", "example", a.ArtifactID, a.FileName()), a.Gav.String())
	}

	publish(t, root, "org.example:a:2.0", "org.example:b:1.5")
	publish(t, root, "org.example:b:1.5")
	return root
}

func artifactOf(t *testing.T, coordinate string) gav.Artifact {
	t.Helper()
	g, err := gav.ParseGav(coordinate)
	require.NoError(t, err)
	return gav.NewArtifact(g)
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// publish adds coordinate to the installation's local repository.
func publish(t *testing.T, root string, coordinate string, requires ...string) {
	t.Helper()
	a := artifactOf(t, coordinate)
	dir := filepath.Join(root, "repo", filepath.FromSlash(gav.GroupPath(a.GroupID)), a.ArtifactID, a.Version)
	writeFile(t, filepath.Join(dir, a.FileName()), coordinate)
	if len(requires) == 0 {
		return
	}
	var b strings.Builder
	for _, r := range requires {
		g := artifactOf(t, r)
		b.WriteString("[[dependencies]]\ngroup_id = \"" + g.GroupID + "\"\nartifact_id = \"" + g.ArtifactID + "\"\nversion = \"" + g.Version + "\"\n")
	}
	writeFile(t, filepath.Join(dir, repository.DescriptorFileName), b.String())
}

func loadManifest(t *testing.T, root string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(config.DefaultPaths(root).ManifestPath)
	require.NoError(t, err)
	return m
}

func installedVersion(t *testing.T, root string, artifactID string) string {
	t.Helper()
	a, ok := loadManifest(t, root).Find(gav.Key{GroupID: "org.example", ArtifactID: artifactID})
	require.True(t, ok)
	return a.Version
}

// runCLI executes the root command with stdin and returns combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}
