// Package repository answers version and dependency questions about artifacts
// and materializes their content.
//
// Every implementation lays artifacts out the same way:
//
//	<base>/<group path>/<artifactId>/<version>/<artifactId>-<version>[-classifier].<ext>
//	<base>/<group path>/<artifactId>/<version>/dependencies.toml
//
// The dependencies.toml descriptor lists the minimum versions an artifact
// version requires. Lookups never touch the installation manifest.
package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// DescriptorFileName is the per-version dependency descriptor.
const DescriptorFileName = "dependencies.toml"

// ErrNoVersions reports that a repository offers no version of an identity.
var ErrNoVersions = errors.New("no versions available")

// ErrNotFound reports that a specific artifact version has no content.
var ErrNotFound = errors.New("artifact not found in repository")

// Repository is the lookup surface consumed by the update engine.
type Repository interface {
	// FindLatestVersionOf returns the newest available version of g's identity.
	// It returns an error wrapping ErrNoVersions when nothing is available.
	FindLatestVersionOf(ctx context.Context, g gav.Gav) (gav.Gav, error)
	// ResolveDescriptor returns the dependency descriptor of g, or nil when
	// the version declares no dependencies.
	ResolveDescriptor(ctx context.Context, g gav.Gav) (*gav.Dependencies, error)
	// Resolve returns a local path holding the content of a.
	Resolve(ctx context.Context, a gav.Artifact) (string, error)
}

// Channel is a named repository that can take part in a Chain.
type Channel interface {
	Repository
	ID() string
}

type descriptorFile struct {
	Dependencies []descriptorEntry `toml:"dependencies"`
}

type descriptorEntry struct {
	GroupID    string `toml:"group_id"`
	ArtifactID string `toml:"artifact_id"`
	Version    string `toml:"version"`
}

// ParseDescriptor decodes a dependencies.toml descriptor belonging to owner.
func ParseDescriptor(data []byte, source string, owner gav.Gav) (*gav.Dependencies, error) {
	var file descriptorFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf(messages.RepositoryParseDescriptorFmt, source, err)
	}
	deps := &gav.Dependencies{Artifact: owner, Requires: make([]gav.Gav, 0, len(file.Dependencies))}
	seen := make(map[gav.Key]int, len(file.Dependencies))
	for idx, entry := range file.Dependencies {
		required := gav.Gav{
			GroupID:    strings.TrimSpace(entry.GroupID),
			ArtifactID: strings.TrimSpace(entry.ArtifactID),
			Version:    strings.TrimSpace(entry.Version),
		}
		if required.GroupID == "" || required.ArtifactID == "" || required.Version == "" {
			return nil, fmt.Errorf(messages.RepositoryDescriptorEntryFmt, source, idx)
		}
		if err := required.Validate(); err != nil {
			return nil, fmt.Errorf(messages.RepositoryDescriptorUnsafeFmt, source, idx, err)
		}
		// One descriptor contributes each identity once; keep the strictest minimum.
		if prev, dup := seen[required.Key()]; dup {
			if required.CompareVersion(deps.Requires[prev]) > 0 {
				deps.Requires[prev] = required
			}
			continue
		}
		seen[required.Key()] = len(deps.Requires)
		deps.Requires = append(deps.Requires, required)
	}
	return deps, nil
}

func noVersions(key gav.Key) error {
	return fmt.Errorf("%s: %w", key, ErrNoVersions)
}

func notFound(a gav.Artifact) error {
	return fmt.Errorf("%s: %w", a.Gav, ErrNotFound)
}

func latestOf(key gav.Key, versions []string) (gav.Gav, error) {
	best := ""
	for _, v := range versions {
		if v == "" {
			continue
		}
		candidate := gav.Gav{GroupID: key.GroupID, ArtifactID: key.ArtifactID, Version: v}
		if err := candidate.Validate(); err != nil {
			log.Warnf("ignoring listed version of %s: %v", key, err)
			continue
		}
		if best == "" || gav.CompareVersions(v, best) > 0 {
			best = v
		}
	}
	if best == "" {
		return gav.Gav{}, noVersions(key)
	}
	return gav.Gav{GroupID: key.GroupID, ArtifactID: key.ArtifactID, Version: best}, nil
}
