// Package installation is the mutable store the update engine works against:
// the manifest, the modules tree, and the advisory lock that keeps a second
// run out while one is in progress.
package installation

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/config"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/layout"
	"github.com/conn-castle/distup/internal/manifest"
	"github.com/conn-castle/distup/internal/messages"
)

// Options configures Open.
type Options struct {
	// System overrides filesystem access; nil uses RealSystem.
	System System
	// LockTimeout bounds the wait for the update lock; zero uses DefaultLockTimeout.
	LockTimeout time.Duration
}

// Installation is an opened, locked installation.
type Installation struct {
	Paths  config.Paths
	Config *config.Config

	sys      System
	manifest *manifest.Manifest
	modules  *layout.Modules
	lock     *updateLock
}

// Open locks the installation at root and loads its config and manifest.
func Open(root string, opts Options) (*Installation, error) {
	if root == "" {
		return nil, errors.New(messages.InstallationRootRequired)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	paths := config.DefaultPaths(abs)
	if info, err := sys.Stat(paths.MetaDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf(messages.ConfigInstallationMissingFmt, abs, config.MetaDirName)
	}

	wait := opts.LockTimeout
	if wait <= 0 {
		wait = DefaultLockTimeout
	}
	lock, err := acquireUpdateLock(paths.LockPath, wait)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(paths.ConfigPath)
	if err != nil {
		_ = lock.release()
		return nil, err
	}
	m, err := manifest.Load(paths.ManifestPath)
	if err != nil {
		_ = lock.release()
		return nil, err
	}
	log.Debugf("opened installation %s with %d artifacts", abs, m.Len())
	return &Installation{
		Paths:    paths,
		Config:   cfg,
		sys:      sys,
		manifest: m,
		modules:  layout.NewModules(paths.ModulesDir, nil),
		lock:     lock,
	}, nil
}

// Close releases the update lock. Unpersisted changes are discarded.
func (i *Installation) Close() error {
	return i.lock.release()
}

// Manifest exposes the loaded manifest.
func (i *Installation) Manifest() *manifest.Manifest {
	return i.manifest
}

// Modules exposes the installation layout.
func (i *Installation) Modules() *layout.Modules {
	return i.modules
}

// Find returns the installed artifact for key.
func (i *Installation) Find(key gav.Key) (gav.Artifact, bool) {
	return i.manifest.Find(key)
}

// Artifacts returns every installed artifact sorted by identity.
func (i *Installation) Artifacts() []gav.Artifact {
	return i.manifest.Artifacts()
}

// UpdateArtifact installs the content at contentPath as newVersion, removes
// the file of oldVersion, and replaces the manifest entry.
func (i *Installation) UpdateArtifact(oldVersion gav.Artifact, newVersion gav.Artifact, contentPath string) error {
	current, ok := i.manifest.Find(oldVersion.Key())
	if !ok {
		return fmt.Errorf(messages.ManifestUpdateNotInstalledFmt, oldVersion.Key())
	}
	if current.Version != oldVersion.Version {
		return fmt.Errorf(messages.ManifestUpdateStaleFmt, oldVersion.Key(), current.Version, oldVersion.Version)
	}
	target, err := i.writeContent(newVersion, contentPath)
	if err != nil {
		return err
	}
	if err := i.removeIfOther(i.modules.PathFor(current), target); err != nil {
		return err
	}
	log.Infof("updated %s to %s", oldVersion.Gav, newVersion.Version)
	return i.manifest.UpdateArtifact(current, newVersion)
}

// InstallContent places the content at contentPath for a, replacing whatever
// version of the identity was in the modules tree. The manifest is untouched.
func (i *Installation) InstallContent(a gav.Artifact, contentPath string) error {
	target, err := i.writeContent(a, contentPath)
	if err != nil {
		return err
	}
	var previous []string
	if installed, ok := i.manifest.Find(a.Key()); ok {
		previous = []string{i.modules.PathFor(installed)}
	} else {
		previous, err = i.modules.Find(a)
		if err != nil {
			return err
		}
	}
	for _, path := range previous {
		if err := i.removeIfOther(path, target); err != nil {
			return err
		}
	}
	log.Debugf("installed %s at %s", a.Gav, target)
	return nil
}

// RegisterUpdates records artifacts already installed by a feature pack.
func (i *Installation) RegisterUpdates(artifacts []gav.Artifact) {
	i.manifest.RegisterUpdates(artifacts)
}

// Persist writes the manifest atomically.
func (i *Installation) Persist() error {
	return i.manifest.Save()
}

// ManifestPath is where Persist writes.
func (i *Installation) ManifestPath() string {
	return i.manifest.Path()
}

func (i *Installation) writeContent(a gav.Artifact, contentPath string) (string, error) {
	if err := a.Validate(); err != nil {
		return "", fmt.Errorf(messages.InstallationWriteContentFmt, a.Gav, err)
	}
	data, err := i.sys.ReadFile(contentPath)
	if err != nil {
		return "", fmt.Errorf(messages.InstallationReadContentFmt, contentPath, err)
	}
	target := i.modules.PathFor(a)
	if err := i.sys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf(messages.InstallationCreateDirFmt, filepath.Dir(target), err)
	}
	if err := i.sys.WriteFileAtomic(target, data, 0o644); err != nil {
		return "", fmt.Errorf(messages.InstallationWriteContentFmt, a.Gav, err)
	}
	return target, nil
}

func (i *Installation) removeIfOther(path string, keep string) error {
	if path == keep {
		return nil
	}
	if err := i.sys.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.InstallationRemoveOldFmt, path, err)
	}
	return nil
}
