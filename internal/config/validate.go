package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/distup/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if len(c.Repositories) == 0 {
		return fmt.Errorf(messages.ConfigRepositoriesRequiredFmt, path)
	}
	seen := make(map[string]int, len(c.Repositories))
	for i, repo := range c.Repositories {
		id := strings.TrimSpace(repo.ID)
		if id == "" {
			return fmt.Errorf(messages.ConfigRepositoryIDRequiredFmt, path, i)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf(messages.ConfigRepositoryIDDupFmt, path, i, id, prev)
		}
		seen[id] = i
		if strings.TrimSpace(repo.URL) == "" {
			return fmt.Errorf(messages.ConfigRepositoryURLReqFmt, path, i)
		}
		if _, err := repo.Location(""); err != nil {
			return fmt.Errorf(messages.ConfigRepositoryURLBadFmt, path, i, repo.URL, err)
		}
	}
	if c.Cache.TTLSeconds != nil && *c.Cache.TTLSeconds < 0 {
		return fmt.Errorf(messages.ConfigNegativeValueFmt, path, "cache.ttl_seconds")
	}
	if c.Network.TimeoutSeconds < 0 {
		return fmt.Errorf(messages.ConfigNegativeValueFmt, path, "network.timeout_seconds")
	}
	if c.Network.Retries != nil && *c.Network.Retries < 0 {
		return fmt.Errorf(messages.ConfigNegativeValueFmt, path, "network.retries")
	}
	return nil
}

// Location is a resolved repository address: either a local directory or a remote base URL.
type Location struct {
	Remote bool
	Path   string
	URL    string
}

var expandHome = homedir.Expand

// Location resolves the repository URL against the installation root.
func (r RepositoryConfig) Location(root string) (Location, error) {
	raw := strings.TrimSpace(r.URL)
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return Location{}, err
		}
		switch parsed.Scheme {
		case "http", "https":
			return Location{Remote: true, URL: strings.TrimRight(raw, "/")}, nil
		case "file":
			return Location{Path: filepath.FromSlash(parsed.Path)}, nil
		default:
			return Location{}, fmt.Errorf(messages.RepositoryUnsupportedSchemeFmt, parsed.Scheme)
		}
	}
	expanded, err := expandHome(raw)
	if err != nil {
		return Location{}, err
	}
	if !filepath.IsAbs(expanded) && root != "" {
		expanded = filepath.Join(root, expanded)
	}
	return Location{Path: filepath.Clean(expanded)}, nil
}

// ResolveCacheDir returns the download cache directory for remote repositories.
func (c *Config) ResolveCacheDir(paths Paths) (string, error) {
	dir := strings.TrimSpace(c.Cache.Dir)
	if dir == "" {
		return paths.CacheDir, nil
	}
	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(paths.Root, expanded)
	}
	return filepath.Clean(expanded), nil
}
