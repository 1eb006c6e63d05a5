package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/config"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/update"
)

func TestUpdate_Yes(t *testing.T) {
	root := newTestInstallation(t)

	out, err := runCLI(t, "", "update", root, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Artefact updates found:")
	assert.Contains(t, out, "Update [org.example, a]:\t\t 1.0 ==> 2.0")
	assert.NotContains(t, out, "Continue with update")
	assert.Contains(t, out, "Applying updates")
	assert.Contains(t, out, "Updates applied: 1 artifact(s), 0 feature-pack artifact(s)")

	assert.Equal(t, "2.0", installedVersion(t, root, "a"))
	assert.Equal(t, "1.5", installedVersion(t, root, "b"))
	modules := config.DefaultPaths(root).ModulesDir
	_, err = os.Stat(filepath.Join(modules, "org", "example", "a", "a-2.0.jar"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(modules, "org", "example", "a", "a-1.0.jar"))
	assert.True(t, os.IsNotExist(err))

	out, err = runCLI(t, "", "update", root, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No updates to execute")
}

func TestUpdate_PromptDeclined(t *testing.T) {
	root := newTestInstallation(t)

	out, err := runCLI(t, "n\n", "update", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Continue with update [y/n]: ")
	assert.Contains(t, out, "Update cancelled")
	assert.NotContains(t, out, "Applying updates")
	assert.Equal(t, "1.0", installedVersion(t, root, "a"))
}

func TestUpdate_PromptRepeatsUntilAnswered(t *testing.T) {
	root := newTestInstallation(t)

	out, err := runCLI(t, "maybe\n\ny\n", "update", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Choose [y/n]: ")
	assert.Contains(t, out, "Updates applied")
	assert.Equal(t, "2.0", installedVersion(t, root, "a"))
}

func TestUpdate_PromptEndOfInputDeclines(t *testing.T) {
	root := newTestInstallation(t)

	out, err := runCLI(t, "", "update", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Update cancelled")
	assert.Equal(t, "1.0", installedVersion(t, root, "a"))
}

func TestTerminalConfirmer_InteractiveForm(t *testing.T) {
	origTerminal := isTerminal
	isTerminal = func() bool { return true }
	t.Cleanup(func() { isTerminal = origTerminal })
	origForm := runFormFunc
	t.Cleanup(func() { runFormFunc = origForm })
	summary := update.Summary{Artifacts: []update.UpdateAction{{
		Old: artifactOf(t, "org.example:a:1.0"),
		New: artifactOf(t, "org.example:a:2.0"),
	}}}

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	var out bytes.Buffer
	ok, err := terminalConfirmer(strings.NewReader(""), &out, false).Confirm(summary)
	require.NoError(t, err)
	assert.False(t, ok, "aborting the form declines")
	assert.Contains(t, out.String(), "Update [org.example, a]")
	assert.NotContains(t, out.String(), "Continue with update [y/n]")

	runFormFunc = func(*huh.Form) error { return errors.New("no tty") }
	_, err = terminalConfirmer(strings.NewReader(""), &out, false).Confirm(summary)
	require.Error(t, err)

	runFormFunc = func(*huh.Form) error { t.Fatal("form must not run with --yes"); return nil }
	out.Reset()
	ok, err = terminalConfirmer(strings.NewReader(""), &out, true).Confirm(summary)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Applying updates")
}

func TestUpdate_Target(t *testing.T) {
	root := newTestInstallation(t)
	publish(t, root, "org.example:b:1.6")

	out, err := runCLI(t, "", "update", root, "org.example:a", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Update [org.example, a]")
	assert.NotContains(t, out, "Update [org.example, b]", "b >= 1.5 is already satisfied")
	assert.Equal(t, "2.0", installedVersion(t, root, "a"))
	assert.Equal(t, "1.5", installedVersion(t, root, "b"))
}

func TestUpdate_InvalidTarget(t *testing.T) {
	root := newTestInstallation(t)

	_, err := runCLI(t, "", "update", root, "org.example:a:1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected groupId:artifactId")

	_, err = runCLI(t, "", "update", root, "org.example:ghost", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact [org.example:ghost] not found")
}

func TestUpdate_UnsatisfiableDependency(t *testing.T) {
	root := newTestInstallation(t)
	publish(t, root, "org.example:a:3.0", "org.example:b:2.0")

	_, err := runCLI(t, "", "update", root, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to find [org.example:b] in version >= 2.0")
	assert.Equal(t, "1.0", installedVersion(t, root, "a"))
}

func TestUpdate_NotAnInstallation(t *testing.T) {
	_, err := runCLI(t, "", "update", t.TempDir(), "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain an installation managed by distup")
}

func TestUpdate_FeaturePackCoversArtifact(t *testing.T) {
	root := newTestInstallation(t)
	paths := config.DefaultPaths(root)
	writeFile(t, paths.FeaturePacksPath, `
[[feature_packs]]
producer = "wildfly"
group_id = "org.example"
artifact_id = "pack"
version = "1.0"
`)
	publish(t, root, "org.example:pack:2.0", "org.example:a:2.0", "org.example:docs:1.0")

	out, err := runCLI(t, "", "update", root, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Feature pack updates:")
	assert.Contains(t, out, "wildfly   1.0  ==>  2.0")
	assert.Contains(t, out, "Skipped 1 artifact update(s) already applied by feature packs")
	assert.Contains(t, out, "Updates applied: 0 artifact(s), 1 feature-pack artifact(s)")

	a, ok := loadManifest(t, root).Find(gav.Key{GroupID: "org.example", ArtifactID: "a"})
	require.True(t, ok)
	assert.Equal(t, "2.0", a.Version)
	assert.Equal(t, "wildfly", a.Channel)
	_, docs := loadManifest(t, root).Find(gav.Key{GroupID: "org.example", ArtifactID: "docs"})
	assert.False(t, docs)

	record, err := os.ReadFile(paths.FeaturePacksPath)
	require.NoError(t, err)
	assert.Contains(t, string(record), "2.0")
}
