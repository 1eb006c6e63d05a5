package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/gav"
)

func TestLocal_FindLatestVersionOf(t *testing.T) {
	root := t.TempDir()
	publish(t, root, "org.example:core:1.0")
	publish(t, root, "org.example:core:1.10")
	publish(t, root, "org.example:core:1.9")

	repo, err := NewLocal("base", root)
	require.NoError(t, err)

	latest, err := repo.FindLatestVersionOf(context.Background(), mustGav(t, "org.example:core:1.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.10", latest.Version)
	assert.Equal(t, "org.example:core", latest.Key().String())

	_, err = repo.FindLatestVersionOf(context.Background(), mustGav(t, "org.example:missing:1.0"))
	assert.True(t, errors.Is(err, ErrNoVersions))
}

func TestLocal_ResolveDescriptor(t *testing.T) {
	root := t.TempDir()
	publish(t, root, "org.example:core:2.0", "org.example:util:1.5", "org.example:io:3.0")
	publish(t, root, "org.example:core:1.0")
	repo, err := NewLocal("base", root)
	require.NoError(t, err)

	deps, err := repo.ResolveDescriptor(context.Background(), mustGav(t, "org.example:core:2.0"))
	require.NoError(t, err)
	require.NotNil(t, deps)
	assert.Equal(t, []gav.Gav{mustGav(t, "org.example:util:1.5"), mustGav(t, "org.example:io:3.0")}, deps.Requires)

	deps, err = repo.ResolveDescriptor(context.Background(), mustGav(t, "org.example:core:1.0"))
	require.NoError(t, err)
	assert.Nil(t, deps, "legacy artifacts without a descriptor have no dependencies")
}

func TestLocal_Resolve(t *testing.T) {
	root := t.TempDir()
	a := publish(t, root, "org.example:core:2.0")
	repo, err := NewLocal("base", root)
	require.NoError(t, err)

	path, err := repo.Resolve(context.Background(), a)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "org.example:core:2.0", string(data))

	_, err = repo.Resolve(context.Background(), a.WithVersion("3.0"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParseDescriptor(t *testing.T) {
	owner := mustGav(t, "org.example:core:2.0")

	deps, err := ParseDescriptor([]byte(descriptorTOML(t, "g:a:1.0", "g:b:1.0", "g:a:1.2")), "d.toml", owner)
	require.NoError(t, err)
	assert.Equal(t, owner, deps.Artifact)
	assert.Equal(t, []gav.Gav{mustGav(t, "g:a:1.2"), mustGav(t, "g:b:1.0")}, deps.Requires)

	_, err = ParseDescriptor([]byte("[[dependencies]]\ngroup_id = \"g\"\n"), "d.toml", owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependencies[0]")

	_, err = ParseDescriptor([]byte("[[dependencies]]\nscope = \"x\"\n"), filepath.Join("x", "d.toml"), owner)
	require.Error(t, err)

	hostile := "[[dependencies]]\ngroup_id = \"g\"\nartifact_id = \"a\"\nversion = \"1.0/../../x\"\n"
	_, err = ParseDescriptor([]byte(hostile), "d.toml", owner)
	assert.ErrorIs(t, err, gav.ErrUnsafeCoordinate)
}
