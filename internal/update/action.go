// Package update computes and applies artifact upgrades for an installation.
//
// The Resolver walks the dependency closure of an artifact's latest version
// and produces UpdateActions; the Updater reconciles them with feature-pack
// upgrades, applies them, and persists the manifest once.
package update

import (
	"fmt"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// UpdateAction moves one installed artifact from Old to a strictly newer New.
type UpdateAction struct {
	Old gav.Artifact
	New gav.Artifact
}

// Key is the identity both sides share.
func (a UpdateAction) Key() gav.Key {
	return a.Old.Key()
}

// String renders the action the way the update prompt lists it.
func (a UpdateAction) String() string {
	return fmt.Sprintf(messages.UpdateActionLineFmt, a.Old.GroupID, a.Old.ArtifactID, a.Old.Version, a.New.Version)
}
