package update

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/featurepack"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
	"github.com/conn-castle/distup/internal/repository"
)

// Store is the mutable installation the Updater works against.
type Store interface {
	Lookup
	Artifacts() []gav.Artifact
	// UpdateArtifact installs the content at contentPath and replaces the
	// manifest entry of oldVersion with newVersion.
	UpdateArtifact(oldVersion gav.Artifact, newVersion gav.Artifact, contentPath string) error
	// RegisterUpdates records artifacts installed by a feature pack.
	RegisterUpdates(artifacts []gav.Artifact)
	// Persist writes the manifest durably.
	Persist() error
	ManifestPath() string
}

// Locator reports where an artifact identity is installed; an empty result
// means the artifact is not part of the installed layout.
type Locator interface {
	Find(a gav.Artifact) ([]string, error)
}

// flusher is implemented by repositories that memoize lookups.
type flusher interface {
	Flush()
}

// Status is the outcome of a run that did not fail.
type Status int

const (
	// StatusNothingToDo means neither source offered an update.
	StatusNothingToDo Status = iota
	// StatusCancelled means the Confirmer declined; nothing changed.
	StatusCancelled
	// StatusApplied means every update was applied and the manifest persisted.
	StatusApplied
)

func (s Status) String() string {
	switch s {
	case StatusNothingToDo:
		return "nothing-to-do"
	case StatusCancelled:
		return "cancelled"
	case StatusApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// Result describes a completed run.
type Result struct {
	Status  Status
	Summary Summary
	// Applied lists the actions installed individually.
	Applied []UpdateAction
	// Skipped lists actions already covered by a feature-pack update.
	Skipped []UpdateAction
	// FeaturePackArtifacts are the layout-relevant artifacts the packs installed.
	FeaturePackArtifacts []gav.Artifact
}

// Options wires an Updater to its collaborators.
type Options struct {
	Store      Store
	Repository repository.Repository
	// Planner defaults to featurepack.NoopPlanner.
	Planner featurepack.Planner
	// Layout filters feature-pack output; required with a Planner.
	Layout    Locator
	Confirmer Confirmer
}

// Updater orchestrates resolution, confirmation, application and persistence.
type Updater struct {
	store     Store
	repo      repository.Repository
	planner   featurepack.Planner
	layout    Locator
	confirmer Confirmer
	resolver  *Resolver
}

// New validates opts and returns an Updater.
func New(opts Options) (*Updater, error) {
	if opts.Store == nil {
		return nil, errors.New(messages.UpdateStoreRequired)
	}
	if opts.Repository == nil {
		return nil, errors.New(messages.UpdateRepositoryRequired)
	}
	if opts.Confirmer == nil {
		return nil, errors.New(messages.UpdateConfirmerRequired)
	}
	planner := opts.Planner
	if planner == nil {
		planner = featurepack.NoopPlanner{}
	} else if opts.Layout == nil {
		return nil, errors.New(messages.UpdateLayoutRequired)
	}
	return &Updater{
		store:     opts.Store,
		repo:      opts.Repository,
		planner:   planner,
		layout:    opts.Layout,
		confirmer: opts.Confirmer,
		resolver:  NewResolver(opts.Store, opts.Repository),
	}, nil
}

// Preview computes what ApplyAll (target nil) or ApplyTarget would change
// without confirming or mutating anything.
func (u *Updater) Preview(ctx context.Context, target *gav.Key) (Summary, error) {
	if target != nil {
		actions, err := u.resolver.FindUpdates(ctx, target.GroupID, target.ArtifactID)
		if err != nil {
			return Summary{}, err
		}
		return Summary{Artifacts: actions}, nil
	}

	installed := u.store.Artifacts()
	keys := make([]gav.Key, 0, len(installed))
	for _, a := range installed {
		keys = append(keys, a.Key())
	}
	actions, err := u.resolver.Plan(ctx, keys)
	if err != nil {
		return Summary{}, err
	}
	plan, err := u.planner.PlanUpdates(ctx)
	if err != nil {
		return Summary{}, &PlannerError{Op: "plan", Err: err}
	}
	return Summary{FeaturePacks: plan.Updates, Artifacts: actions}, nil
}

// ApplyAll updates every installed artifact and feature pack.
func (u *Updater) ApplyAll(ctx context.Context) (Result, error) {
	return u.run(ctx, nil)
}

// ApplyTarget updates one installed artifact and the dependencies it pulls
// forward. Feature packs are not consulted.
func (u *Updater) ApplyTarget(ctx context.Context, groupID string, artifactID string) (Result, error) {
	return u.run(ctx, &gav.Key{GroupID: groupID, ArtifactID: artifactID})
}

func (u *Updater) run(ctx context.Context, target *gav.Key) (Result, error) {
	summary, err := u.Preview(ctx, target)
	if err != nil {
		return Result{}, err
	}
	if summary.IsEmpty() {
		return Result{Status: StatusNothingToDo}, nil
	}
	ok, err := u.confirmer.Confirm(summary)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		log.Debug("update declined")
		return Result{Status: StatusCancelled, Summary: summary}, nil
	}
	return u.apply(ctx, summary)
}

func (u *Updater) apply(ctx context.Context, summary Summary) (Result, error) {
	result := Result{Status: StatusApplied, Summary: summary}

	bundled := make(map[gav.Key]gav.Artifact)
	if len(summary.FeaturePacks) > 0 {
		touched, err := u.planner.Apply(ctx, featurepack.Plan{Updates: summary.FeaturePacks})
		if err != nil {
			return Result{}, &PlannerError{Op: "apply", Err: err}
		}
		for _, a := range touched {
			locations, err := u.layout.Find(a)
			if err != nil {
				return Result{}, &PlannerError{Op: "apply", Err: err}
			}
			if len(locations) == 0 {
				continue
			}
			bundled[a.Key()] = a
			result.FeaturePackArtifacts = append(result.FeaturePackArtifacts, a)
		}
		// Lookups memoized before the packs were installed may be stale.
		if f, ok := u.repo.(flusher); ok {
			f.Flush()
		}
		u.store.RegisterUpdates(result.FeaturePackArtifacts)
		log.Infof("feature packs installed %d artifacts", len(result.FeaturePackArtifacts))
	}

	for _, action := range summary.Artifacts {
		if current, ok := bundled[action.Key()]; ok {
			// The pack already moved this identity; never go backwards from it.
			if current.SameRelease(action.New) || action.New.CompareVersion(current.Gav) <= 0 {
				result.Skipped = append(result.Skipped, action)
				continue
			}
			action.Old = current
		}
		content, err := u.repo.Resolve(ctx, action.New)
		if err != nil {
			return Result{}, &ApplyError{Target: action.New.Gav.String(), Err: err}
		}
		if err := u.store.UpdateArtifact(action.Old, action.New, content); err != nil {
			return Result{}, &ApplyError{Target: action.New.Gav.String(), Err: err}
		}
		result.Applied = append(result.Applied, action)
	}

	if err := u.store.Persist(); err != nil {
		return Result{}, &ApplyError{Target: u.store.ManifestPath(), Err: err}
	}
	log.Infof("applied %d updates, %d covered by feature packs", len(result.Applied), len(result.Skipped))
	return result, nil
}
