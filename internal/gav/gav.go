// Package gav defines the coordinates used to identify installed artifacts.
//
// A Gav is a groupId, artifactId and version triple. Lookups are keyed by
// Key (groupId and artifactId only): the version is never part of an
// artifact's identity.
package gav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/distup/internal/messages"
)

// DefaultExtension is the packaging assumed when an artifact does not name one.
const DefaultExtension = "jar"

// ErrUnsafeCoordinate reports a coordinate part that cannot be used as a path element.
var ErrUnsafeCoordinate = errors.New("unsafe coordinate")

// Key identifies an artifact independent of its version.
type Key struct {
	GroupID    string
	ArtifactID string
}

// String renders the key as groupId:artifactId.
func (k Key) String() string {
	return k.GroupID + ":" + k.ArtifactID
}

// Gav is a logical groupId:artifactId:version coordinate.
type Gav struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Key returns the version-less identity of g.
func (g Gav) Key() Key {
	return Key{GroupID: g.GroupID, ArtifactID: g.ArtifactID}
}

// String renders the coordinate as groupId:artifactId:version.
func (g Gav) String() string {
	return g.GroupID + ":" + g.ArtifactID + ":" + g.Version
}

// CompareVersion orders g against other by version only.
// It returns -1 if g is older, 0 if equivalent and 1 if newer.
func (g Gav) CompareVersion(other Gav) int {
	return CompareVersions(g.Version, other.Version)
}

// ParseGav parses groupId:artifactId[:version].
func ParseGav(raw string) (Gav, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Gav{}, fmt.Errorf(messages.GavInvalidCoordinateFmt, raw)
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return Gav{}, fmt.Errorf(messages.GavInvalidCoordinateFmt, raw)
		}
	}
	g := Gav{GroupID: strings.TrimSpace(parts[0]), ArtifactID: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		g.Version = strings.TrimSpace(parts[2])
	}
	if err := g.Validate(); err != nil {
		return Gav{}, err
	}
	return g, nil
}

// Validate rejects coordinates that would not stay inside their directory
// once laid out on disk. An empty version is allowed.
func (g Gav) Validate() error {
	if err := checkPathElement("groupId", g.GroupID); err != nil {
		return err
	}
	if err := checkPathElement("artifactId", g.ArtifactID); err != nil {
		return err
	}
	return checkPathElement("version", g.Version)
}

func checkPathElement(field string, value string) error {
	if value == "." || strings.Contains(value, "..") || strings.ContainsAny(value, "/\\\x00") {
		return fmt.Errorf("%w: "+messages.GavUnsafeFieldFmt, ErrUnsafeCoordinate, field, value)
	}
	return nil
}

// Artifact is a Gav with installation context. Values are never mutated in
// place; WithVersion and WithChannel return modified copies.
type Artifact struct {
	Gav
	Classifier string
	Extension  string
	Channel    string
}

// NewArtifact wraps g with the default extension.
func NewArtifact(g Gav) Artifact {
	return Artifact{Gav: g, Extension: DefaultExtension}
}

// WithVersion returns a copy of a at the given version.
func (a Artifact) WithVersion(version string) Artifact {
	a.Version = version
	return a
}

// WithChannel returns a copy of a attributed to channel.
func (a Artifact) WithChannel(channel string) Artifact {
	a.Channel = channel
	return a
}

// Validate checks the coordinate plus classifier and extension.
func (a Artifact) Validate() error {
	if err := a.Gav.Validate(); err != nil {
		return err
	}
	if err := checkPathElement("classifier", a.Classifier); err != nil {
		return err
	}
	return checkPathElement("extension", a.Extension)
}

// Ext returns the artifact extension, falling back to DefaultExtension.
func (a Artifact) Ext() string {
	if a.Extension == "" {
		return DefaultExtension
	}
	return a.Extension
}

// FileName is the repository and layout file name of the artifact content.
func (a Artifact) FileName() string {
	name := a.ArtifactID + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return name + "." + a.Ext()
}

// SameRelease reports whether a and b name the same identity at an equivalent version.
func (a Artifact) SameRelease(b Artifact) bool {
	return a.Key() == b.Key() && a.Classifier == b.Classifier && a.CompareVersion(b.Gav) == 0
}

// Dependencies is the descriptor attached to one artifact version. Each
// required Gav carries the minimum version that satisfies the requirement.
type Dependencies struct {
	Artifact Gav
	Requires []Gav
}

// GroupPath converts a groupId into its directory form (org.example -> org/example).
func GroupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}
