package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// Local is a repository backed by a directory tree.
type Local struct {
	id   string
	root string
}

// NewLocal returns a repository rooted at root.
func NewLocal(id string, root string) (*Local, error) {
	if root == "" {
		return nil, errors.New(messages.RepositoryRootRequired)
	}
	return &Local{id: id, root: root}, nil
}

// ID names the channel.
func (l *Local) ID() string {
	return l.id
}

func (l *Local) artifactDir(key gav.Key) string {
	return filepath.Join(l.root, filepath.FromSlash(gav.GroupPath(key.GroupID)), key.ArtifactID)
}

// FindLatestVersionOf scans the version directories of g's identity.
func (l *Local) FindLatestVersionOf(_ context.Context, g gav.Gav) (gav.Gav, error) {
	dir := l.artifactDir(g.Key())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return gav.Gav{}, noVersions(g.Key())
		}
		return gav.Gav{}, fmt.Errorf(messages.RepositoryListVersionsFmt, g.Key(), err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	latest, err := latestOf(g.Key(), versions)
	if err != nil {
		return gav.Gav{}, err
	}
	log.Tracef("channel %s: latest %s is %s", l.id, g.Key(), latest.Version)
	return latest, nil
}

// ResolveDescriptor reads dependencies.toml for g, if present.
func (l *Local) ResolveDescriptor(_ context.Context, g gav.Gav) (*gav.Dependencies, error) {
	path := filepath.Join(l.artifactDir(g.Key()), g.Version, DescriptorFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.RepositoryReadDescriptorFmt, g, err)
	}
	return ParseDescriptor(data, path, g)
}

// Resolve returns the path of a's content inside the repository.
func (l *Local) Resolve(_ context.Context, a gav.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(l.artifactDir(a.Key()), a.Version, a.FileName())
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(a)
		}
		return "", err
	}
	if info.IsDir() {
		return "", notFound(a)
	}
	return path, nil
}
