package update

import (
	"github.com/conn-castle/distup/internal/featurepack"
)

// Summary is everything a run is about to change, shown before confirmation.
type Summary struct {
	FeaturePacks []featurepack.ProducerUpdate
	Artifacts    []UpdateAction
}

// IsEmpty reports whether there is nothing to apply.
func (s Summary) IsEmpty() bool {
	return len(s.FeaturePacks) == 0 && len(s.Artifacts) == 0
}

// Confirmer decides whether a computed Summary is applied.
type Confirmer interface {
	Confirm(summary Summary) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(summary Summary) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(summary Summary) (bool, error) {
	return f(summary)
}

// AlwaysConfirm accepts every summary.
var AlwaysConfirm Confirmer = ConfirmFunc(func(Summary) (bool, error) { return true, nil })
