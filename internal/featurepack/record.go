package featurepack

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/distup/internal/fsutil"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// Installed is one feature pack recorded in .distup/feature-packs.toml.
type Installed struct {
	Producer   string `toml:"producer"`
	GroupID    string `toml:"group_id"`
	ArtifactID string `toml:"artifact_id"`
	Version    string `toml:"version"`
}

// Gav is the installed pack coordinate.
func (p Installed) Gav() gav.Gav {
	return gav.Gav{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version}
}

// Record lists the feature packs an installation was provisioned from.
type Record struct {
	FeaturePacks []Installed `toml:"feature_packs"`
}

var writeRecordFile = fsutil.WriteFileAtomic

// LoadRecord reads the record at path. A missing file is an empty record.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Record{}, nil
		}
		return nil, fmt.Errorf(messages.FeaturePackReadRecordFmt, path, err)
	}
	var record Record
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf(messages.FeaturePackParseRecordFmt, path, err)
	}
	for idx, pack := range record.FeaturePacks {
		if strings.TrimSpace(pack.Producer) == "" || strings.TrimSpace(pack.GroupID) == "" ||
			strings.TrimSpace(pack.ArtifactID) == "" || strings.TrimSpace(pack.Version) == "" {
			return nil, fmt.Errorf(messages.FeaturePackParseRecordFmt, path, fmt.Errorf(messages.FeaturePackRecordEntryFmt, idx))
		}
		if err := pack.Gav().Validate(); err != nil {
			return nil, fmt.Errorf(messages.FeaturePackParseRecordFmt, path, err)
		}
	}
	return &record, nil
}

// Save writes the record atomically.
func (r *Record) Save(path string) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf(messages.FeaturePackWriteRecordFmt, path, err)
	}
	if err := writeRecordFile(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.FeaturePackWriteRecordFmt, path, err)
	}
	return nil
}

func (r *Record) find(producer string) (int, bool) {
	for idx, pack := range r.FeaturePacks {
		if pack.Producer == producer {
			return idx, true
		}
	}
	return 0, false
}
