package config

import "path/filepath"

// MetaDirName is the per-installation metadata directory.
const MetaDirName = ".distup"

// Paths holds resolved paths for an installation's metadata and content.
type Paths struct {
	Root             string
	MetaDir          string
	ConfigPath       string
	ManifestPath     string
	FeaturePacksPath string
	LockPath         string
	CacheDir         string
	ModulesDir       string
}

// DefaultPaths returns the default paths for an installation root.
func DefaultPaths(root string) Paths {
	meta := filepath.Join(root, MetaDirName)
	return Paths{
		Root:             root,
		MetaDir:          meta,
		ConfigPath:       filepath.Join(meta, "config.toml"),
		ManifestPath:     filepath.Join(meta, "manifest.toml"),
		FeaturePacksPath: filepath.Join(meta, "feature-packs.toml"),
		LockPath:         filepath.Join(meta, "update.lock"),
		CacheDir:         filepath.Join(meta, "cache"),
		ModulesDir:       filepath.Join(root, "modules"),
	}
}
