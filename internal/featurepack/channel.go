package featurepack

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
	"github.com/conn-castle/distup/internal/repository"
)

// Locator finds installed files of an artifact identity.
type Locator interface {
	Find(a gav.Artifact) ([]string, error)
}

// Installer replaces installed module content in place.
type Installer interface {
	InstallContent(a gav.Artifact, contentPath string) error
}

// ChannelPlanner upgrades the feature packs listed in an installation's
// record to the latest versions the repository offers. A pack version's
// dependency descriptor is its artifact list.
type ChannelPlanner struct {
	recordPath string
	repo       repository.Repository
	layout     Locator
	installer  Installer
}

// NewChannelPlanner returns a planner over the record at recordPath.
func NewChannelPlanner(recordPath string, repo repository.Repository, layout Locator, installer Installer) *ChannelPlanner {
	return &ChannelPlanner{recordPath: recordPath, repo: repo, layout: layout, installer: installer}
}

// PlanUpdates implements Planner.
func (p *ChannelPlanner) PlanUpdates(ctx context.Context) (Plan, error) {
	record, err := LoadRecord(p.recordPath)
	if err != nil {
		return Plan{}, err
	}
	var plan Plan
	for _, pack := range record.FeaturePacks {
		installed := pack.Gav()
		latest, err := p.repo.FindLatestVersionOf(ctx, installed)
		if err != nil {
			if errors.Is(err, repository.ErrNoVersions) {
				log.Debugf("feature pack %s: no versions offered", installed.Key())
				continue
			}
			return Plan{}, err
		}
		if latest.CompareVersion(installed) <= 0 {
			continue
		}
		plan.Updates = append(plan.Updates, ProducerUpdate{
			Producer:       pack.Producer,
			InstalledBuild: installed.Version,
			NewBuild:       latest.Version,
			Pack:           latest,
		})
	}
	return plan, nil
}

// Apply implements Planner. Artifacts of the new pack versions that are part
// of the installed layout get their content replaced; every artifact listed by
// the packs is returned, tagged with the producer as its channel. The record
// is rewritten once all packs are installed.
func (p *ChannelPlanner) Apply(ctx context.Context, plan Plan) ([]gav.Artifact, error) {
	record, err := LoadRecord(p.recordPath)
	if err != nil {
		return nil, err
	}
	var touched []gav.Artifact
	for _, update := range plan.Updates {
		idx, ok := record.find(update.Producer)
		if !ok {
			return nil, fmt.Errorf(messages.FeaturePackMissingFmt, update.Producer)
		}
		deps, err := p.repo.ResolveDescriptor(ctx, update.Pack)
		if err != nil {
			return nil, err
		}
		if deps == nil {
			return nil, fmt.Errorf(messages.FeaturePackNoDescriptorFmt, update.Pack)
		}
		for _, member := range deps.Requires {
			a := gav.NewArtifact(member).WithChannel(update.Producer)
			files, err := p.layout.Find(a)
			if err != nil {
				return nil, err
			}
			if len(files) > 0 {
				content, err := p.repo.Resolve(ctx, a)
				if err != nil {
					return nil, fmt.Errorf(messages.FeaturePackResolveFmt, a.Gav, update.Producer, err)
				}
				if err := p.installer.InstallContent(a, content); err != nil {
					return nil, fmt.Errorf(messages.FeaturePackInstallFmt, a.Gav, update.Producer, err)
				}
			}
			touched = append(touched, a)
		}
		record.FeaturePacks[idx].Version = update.NewBuild
		log.Infof("feature pack %s updated to %s", update.Producer, update.NewBuild)
	}
	if len(plan.Updates) > 0 {
		if err := record.Save(p.recordPath); err != nil {
			return nil, err
		}
	}
	return touched, nil
}
