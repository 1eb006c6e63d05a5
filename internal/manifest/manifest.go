// Package manifest holds the durable record of installed artifacts.
//
// A Manifest maps each artifact identity (groupId:artifactId) to exactly one
// installed Artifact. It is loaded once per operation, mutated only through
// UpdateArtifact and RegisterUpdates, and written back with Save.
package manifest

import (
	"fmt"
	"sort"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// Manifest is the in-memory view of the installed artifact set.
type Manifest struct {
	path    string
	entries map[gav.Key]gav.Artifact
}

// New builds a manifest from artifacts. It fails when two artifacts share an identity.
func New(path string, artifacts []gav.Artifact) (*Manifest, error) {
	m := &Manifest{path: path, entries: make(map[gav.Key]gav.Artifact, len(artifacts))}
	for _, artifact := range artifacts {
		if _, exists := m.entries[artifact.Key()]; exists {
			return nil, fmt.Errorf(messages.ManifestDuplicateKeyFmt, artifact.Key())
		}
		m.entries[artifact.Key()] = artifact
	}
	return m, nil
}

// Path is the location the manifest was loaded from and will be saved to.
func (m *Manifest) Path() string {
	return m.path
}

// Find returns the installed artifact for key.
func (m *Manifest) Find(key gav.Key) (gav.Artifact, bool) {
	artifact, ok := m.entries[key]
	return artifact, ok
}

// Artifacts returns the installed artifacts sorted by identity.
func (m *Manifest) Artifacts() []gav.Artifact {
	out := make([]gav.Artifact, 0, len(m.entries))
	for _, artifact := range m.entries {
		out = append(out, artifact)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out
}

// Len reports the number of installed artifacts.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// UpdateArtifact replaces the installed oldVersion with newVersion.
// Both must share an identity and oldVersion must be the version currently recorded.
func (m *Manifest) UpdateArtifact(oldVersion gav.Artifact, newVersion gav.Artifact) error {
	if oldVersion.Key() != newVersion.Key() {
		return fmt.Errorf(messages.ManifestUpdateIdentityFmt, oldVersion.Gav, newVersion.Gav)
	}
	current, ok := m.entries[oldVersion.Key()]
	if !ok {
		return fmt.Errorf(messages.ManifestUpdateNotInstalledFmt, oldVersion.Key())
	}
	if current.Version != oldVersion.Version {
		return fmt.Errorf(messages.ManifestUpdateStaleFmt, oldVersion.Key(), current.Version, oldVersion.Version)
	}
	m.entries[newVersion.Key()] = newVersion
	return nil
}

// RegisterUpdates records artifacts that were installed by another mechanism
// (feature-pack application). Entries replace the recorded version for their
// identity; identities that are not installed yet are added.
func (m *Manifest) RegisterUpdates(artifacts []gav.Artifact) {
	for _, artifact := range artifacts {
		m.entries[artifact.Key()] = artifact
	}
}
