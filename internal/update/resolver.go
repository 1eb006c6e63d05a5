package update

import (
	"context"
	"errors"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/repository"
)

// Lookup answers which artifact is installed for an identity.
type Lookup interface {
	Find(key gav.Key) (gav.Artifact, bool)
}

// Resolver computes the upgrades needed to move an installed artifact to its
// latest version with every declared minimum dependency version satisfied.
// It never mutates the installation.
type Resolver struct {
	installed Lookup
	repo      repository.Repository
}

// NewResolver returns a resolver over the installed set and repo.
func NewResolver(installed Lookup, repo repository.Repository) *Resolver {
	return &Resolver{installed: installed, repo: repo}
}

// FindUpdates returns the actions for groupID:artifactID and the
// dependencies its latest version pulls forward, top-level first. It returns
// no actions when nothing newer is available and fails without a partial
// result when any requirement cannot be met.
func (r *Resolver) FindUpdates(ctx context.Context, groupID string, artifactID string) ([]UpdateAction, error) {
	key := gav.Key{GroupID: groupID, ArtifactID: artifactID}
	installed, ok := r.installed.Find(key)
	if !ok {
		return nil, &ArtifactNotFoundError{Gav: gav.Gav{GroupID: groupID, ArtifactID: artifactID}}
	}
	latest, err := r.repo.FindLatestVersionOf(ctx, installed.Gav)
	if err != nil {
		if errors.Is(err, repository.ErrNoVersions) {
			log.Debugf("%s: repository offers no versions", key)
			return nil, nil
		}
		return nil, &ResolutionError{Gav: installed.Gav, Err: err}
	}
	if latest.CompareVersion(installed.Gav) <= 0 {
		log.Debugf("%s: %s is up to date", key, installed.Version)
		return nil, nil
	}

	actions := []UpdateAction{{Old: installed, New: installed.WithVersion(latest.Version)}}
	// selected holds the version each identity will end up at; an identity
	// enters it at most once, which bounds the walk on cyclic graphs.
	selected := map[gav.Key]string{key: latest.Version}
	queue, err := r.requirements(ctx, latest)
	if err != nil {
		return nil, err
	}

	for len(queue) > 0 {
		required := queue[0]
		queue = queue[1:]

		dep, ok := r.installed.Find(required.Key())
		if !ok {
			return nil, &ArtifactNotFoundError{Gav: required}
		}
		version, planned := selected[required.Key()]
		if !planned {
			version = dep.Version
		}
		current := dep.Gav
		current.Version = version
		if required.CompareVersion(current) <= 0 {
			continue
		}
		if planned {
			return nil, &ArtifactNotFoundError{Gav: required, MinVersion: required.Version}
		}

		depLatest, err := r.repo.FindLatestVersionOf(ctx, required)
		if err != nil {
			if errors.Is(err, repository.ErrNoVersions) {
				return nil, &ArtifactNotFoundError{Gav: required, MinVersion: required.Version}
			}
			return nil, &ResolutionError{Gav: required, Err: err}
		}
		if depLatest.CompareVersion(required) < 0 {
			return nil, &ArtifactNotFoundError{Gav: required, MinVersion: required.Version}
		}

		log.Debugf("%s requires %s >= %s; selecting %s", key, required.Key(), required.Version, depLatest.Version)
		actions = append(actions, UpdateAction{Old: dep, New: dep.WithVersion(depLatest.Version)})
		selected[required.Key()] = depLatest.Version

		next, err := r.requirements(ctx, depLatest)
		if err != nil {
			return nil, err
		}
		queue = append(queue, next...)
	}
	return actions, nil
}

// Plan resolves every key and merges the results, one action per identity,
// sorted by identity.
func (r *Resolver) Plan(ctx context.Context, keys []gav.Key) ([]UpdateAction, error) {
	seen := make(map[gav.Key]bool)
	var merged []UpdateAction
	for _, key := range keys {
		actions, err := r.FindUpdates(ctx, key.GroupID, key.ArtifactID)
		if err != nil {
			return nil, err
		}
		for _, action := range actions {
			if seen[action.Key()] {
				continue
			}
			seen[action.Key()] = true
			merged = append(merged, action)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Key().String() < merged[j].Key().String()
	})
	return merged, nil
}

// requirements returns the minimum versions g declares; none when g has no descriptor.
func (r *Resolver) requirements(ctx context.Context, g gav.Gav) ([]gav.Gav, error) {
	deps, err := r.repo.ResolveDescriptor(ctx, g)
	if err != nil {
		return nil, &ResolutionError{Gav: g, Err: err}
	}
	if deps == nil {
		return nil, nil
	}
	return deps.Requires, nil
}
