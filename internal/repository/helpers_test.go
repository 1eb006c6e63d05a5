package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/gav"
)

// publish lays out one artifact version in a local repository tree.
// deps are "groupId:artifactId:minVersion" coordinates.
func publish(t *testing.T, root string, coordinate string, deps ...string) gav.Artifact {
	t.Helper()
	g, err := gav.ParseGav(coordinate)
	require.NoError(t, err)
	a := gav.NewArtifact(g)
	dir := filepath.Join(root, filepath.FromSlash(gav.GroupPath(g.GroupID)), g.ArtifactID, g.Version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, a.FileName()), []byte(coordinate), 0o644))
	if len(deps) > 0 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DescriptorFileName), []byte(descriptorTOML(t, deps...)), 0o644))
	}
	return a
}

func descriptorTOML(t *testing.T, deps ...string) string {
	t.Helper()
	var b strings.Builder
	for _, dep := range deps {
		g, err := gav.ParseGav(dep)
		require.NoError(t, err)
		b.WriteString("[[dependencies]]\n")
		b.WriteString("group_id = \"" + g.GroupID + "\"\n")
		b.WriteString("artifact_id = \"" + g.ArtifactID + "\"\n")
		b.WriteString("version = \"" + g.Version + "\"\n")
	}
	return b.String()
}

func mustGav(t *testing.T, coordinate string) gav.Gav {
	t.Helper()
	g, err := gav.ParseGav(coordinate)
	require.NoError(t, err)
	return g
}
