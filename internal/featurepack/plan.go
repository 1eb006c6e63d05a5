// Package featurepack plans and applies bundled upgrades: a feature pack is
// a versioned set of artifacts published by one producer and upgraded as a unit.
package featurepack

import (
	"context"

	"github.com/conn-castle/distup/internal/gav"
)

// ProducerUpdate is one feature pack moving from InstalledBuild to NewBuild.
type ProducerUpdate struct {
	Producer       string
	InstalledBuild string
	NewBuild       string
	// Pack is the coordinate of the new pack version.
	Pack gav.Gav
}

// Plan is the ordered set of feature-pack updates.
type Plan struct {
	Updates []ProducerUpdate
}

// IsEmpty reports whether the plan has nothing to apply.
func (p Plan) IsEmpty() bool {
	return len(p.Updates) == 0
}

// Planner proposes and applies feature-pack updates.
type Planner interface {
	// PlanUpdates returns the pending feature-pack updates.
	PlanUpdates(ctx context.Context) (Plan, error)
	// Apply installs plan and returns every artifact the packs touched.
	Apply(ctx context.Context, plan Plan) ([]gav.Artifact, error)
}

// NoopPlanner never proposes anything.
type NoopPlanner struct{}

// PlanUpdates implements Planner.
func (NoopPlanner) PlanUpdates(context.Context) (Plan, error) {
	return Plan{}, nil
}

// Apply implements Planner.
func (NoopPlanner) Apply(context.Context, Plan) ([]gav.Artifact, error) {
	return nil, nil
}
