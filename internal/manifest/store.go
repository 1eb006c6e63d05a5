package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/distup/internal/fsutil"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// SchemaVersion is the manifest file format version written by Save.
const SchemaVersion = 1

// ParseError reports a manifest that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.ManifestParseFailedFmt, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type manifestFile struct {
	SchemaVersion int             `toml:"schema_version"`
	Artifacts     []artifactEntry `toml:"artifacts"`
}

type artifactEntry struct {
	GroupID    string `toml:"group_id"`
	ArtifactID string `toml:"artifact_id"`
	Version    string `toml:"version"`
	Classifier string `toml:"classifier,omitempty"`
	Extension  string `toml:"extension,omitempty"`
	Channel    string `toml:"channel,omitempty"`
}

var writeFileAtomic = fsutil.WriteFileAtomic

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(data, path)
}

// Parse decodes manifest TOML. Unknown keys, an unexpected schema version,
// incomplete entries and duplicate identities are all parse errors.
func Parse(data []byte, path string) (*Manifest, error) {
	var file manifestFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if file.SchemaVersion != SchemaVersion {
		return nil, &ParseError{Path: path, Err: fmt.Errorf(messages.ManifestSchemaVersionFmt, file.SchemaVersion, SchemaVersion)}
	}

	artifacts := make([]gav.Artifact, 0, len(file.Artifacts))
	seen := make(map[gav.Key]string, len(file.Artifacts))
	for idx, entry := range file.Artifacts {
		if err := validateEntry(idx, entry); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		artifact := entry.artifact()
		if err := artifact.Validate(); err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf(messages.ManifestArtifactUnsafeFmt, idx, err)}
		}
		if version, dup := seen[artifact.Key()]; dup {
			return nil, &ParseError{Path: path, Err: fmt.Errorf(messages.ManifestDuplicateArtifactFmt, idx, artifact.Key(), version)}
		}
		seen[artifact.Key()] = artifact.Version
		artifacts = append(artifacts, artifact)
	}
	return New(path, artifacts)
}

func validateEntry(idx int, entry artifactEntry) error {
	var missing []string
	if strings.TrimSpace(entry.GroupID) == "" {
		missing = append(missing, "group_id")
	}
	if strings.TrimSpace(entry.ArtifactID) == "" {
		missing = append(missing, "artifact_id")
	}
	if strings.TrimSpace(entry.Version) == "" {
		missing = append(missing, "version")
	}
	if len(missing) == 0 {
		return nil
	}
	errs := make([]error, 0, len(missing))
	for _, field := range missing {
		errs = append(errs, fmt.Errorf(messages.ManifestArtifactFieldFmt, idx, field))
	}
	return errors.Join(errs...)
}

func (e artifactEntry) artifact() gav.Artifact {
	return gav.Artifact{
		Gav: gav.Gav{
			GroupID:    e.GroupID,
			ArtifactID: e.ArtifactID,
			Version:    e.Version,
		},
		Classifier: e.Classifier,
		Extension:  e.Extension,
		Channel:    e.Channel,
	}
}

// Marshal encodes the manifest in its durable TOML form.
func (m *Manifest) Marshal() ([]byte, error) {
	file := manifestFile{SchemaVersion: SchemaVersion}
	for _, artifact := range m.Artifacts() {
		file.Artifacts = append(file.Artifacts, artifactEntry{
			GroupID:    artifact.GroupID,
			ArtifactID: artifact.ArtifactID,
			Version:    artifact.Version,
			Classifier: artifact.Classifier,
			Extension:  artifact.Extension,
			Channel:    artifact.Channel,
		})
	}
	data, err := toml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestEncodeFailedFmt, err)
	}
	return data, nil
}

// Save writes the manifest atomically to its path. A failed save leaves the
// previous file untouched.
func (m *Manifest) Save() error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(m.path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ManifestWriteFailedFmt, m.path, err)
	}
	return nil
}
