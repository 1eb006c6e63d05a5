package repository

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// Chain combines several channels. The latest version is the highest offered
// by any channel (the earlier channel wins ties); descriptors and content come
// from the first channel that has them.
type Chain struct {
	channels []Channel
}

// NewChain returns a chain over channels in priority order.
func NewChain(channels ...Channel) (*Chain, error) {
	if len(channels) == 0 {
		return nil, errors.New(messages.RepositoryChainEmpty)
	}
	return &Chain{channels: channels}, nil
}

// FindLatestVersionOf implements Repository.
func (c *Chain) FindLatestVersionOf(ctx context.Context, g gav.Gav) (gav.Gav, error) {
	var (
		best  gav.Gav
		found bool
		from  string
	)
	for _, channel := range c.channels {
		latest, err := channel.FindLatestVersionOf(ctx, g)
		if err != nil {
			if errors.Is(err, ErrNoVersions) {
				continue
			}
			return gav.Gav{}, err
		}
		if !found || latest.CompareVersion(best) > 0 {
			best, found, from = latest, true, channel.ID()
		}
	}
	if !found {
		return gav.Gav{}, noVersions(g.Key())
	}
	log.Debugf("latest %s is %s (channel %s)", g.Key(), best.Version, from)
	return best, nil
}

// ResolveDescriptor implements Repository.
func (c *Chain) ResolveDescriptor(ctx context.Context, g gav.Gav) (*gav.Dependencies, error) {
	for _, channel := range c.channels {
		deps, err := channel.ResolveDescriptor(ctx, g)
		if err != nil {
			return nil, err
		}
		if deps != nil {
			return deps, nil
		}
	}
	return nil, nil
}

// Resolve implements Repository.
func (c *Chain) Resolve(ctx context.Context, a gav.Artifact) (string, error) {
	for _, channel := range c.channels {
		path, err := channel.Resolve(ctx, a)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", notFound(a)
}
