package repository

import (
	"path/filepath"

	"github.com/conn-castle/distup/internal/config"
)

// FromConfig builds the repository chain declared in an installation config,
// wrapped in a lookup cache unless the cache lifetime is zero.
func FromConfig(cfg *config.Config, paths config.Paths) (Repository, error) {
	cacheDir, err := cfg.ResolveCacheDir(paths)
	if err != nil {
		return nil, err
	}
	channels := make([]Channel, 0, len(cfg.Repositories))
	for _, rc := range cfg.Repositories {
		loc, err := rc.Location(paths.Root)
		if err != nil {
			return nil, err
		}
		var channel Channel
		if loc.Remote {
			channel, err = NewRemote(rc.ID, loc.URL, RemoteOptions{
				CacheDir:   filepath.Join(cacheDir, rc.ID),
				Timeout:    cfg.Network.Timeout(),
				MaxRetries: cfg.Network.MaxRetries(),
			})
		} else {
			channel, err = NewLocal(rc.ID, loc.Path)
		}
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	chain, err := NewChain(channels...)
	if err != nil {
		return nil, err
	}
	if ttl := cfg.Cache.TTL(); ttl > 0 {
		return NewCached(chain, ttl), nil
	}
	return chain, nil
}
