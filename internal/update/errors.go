package update

import (
	"fmt"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// ArtifactNotFoundError reports an identity that is not installed, or a
// requirement no available version satisfies (MinVersion set).
type ArtifactNotFoundError struct {
	Gav        gav.Gav
	MinVersion string
}

func (e *ArtifactNotFoundError) Error() string {
	if e.MinVersion != "" {
		return fmt.Sprintf(messages.UpdateUnsatisfiableFmt, e.Gav.GroupID, e.Gav.ArtifactID, e.MinVersion)
	}
	return fmt.Sprintf(messages.UpdateArtifactNotFoundFmt, e.Gav.GroupID, e.Gav.ArtifactID)
}

// ResolutionError wraps a repository failure met while resolving Gav.
type ResolutionError struct {
	Gav gav.Gav
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Errorf(messages.UpdateResolutionFailedFmt, e.Gav, e.Err).Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ApplyError reports a failure installing Target (an artifact coordinate or
// the manifest path). Changes made earlier in the run are not persisted.
type ApplyError struct {
	Target string
	Err    error
}

func (e *ApplyError) Error() string {
	return fmt.Errorf(messages.UpdateApplyFailedFmt, e.Target, e.Err).Error()
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// PlannerError wraps a feature-pack planner failure. Op is "plan" or "apply".
type PlannerError struct {
	Op  string
	Err error
}

func (e *PlannerError) Error() string {
	return fmt.Errorf(messages.UpdatePlannerFailedFmt, e.Op, e.Err).Error()
}

func (e *PlannerError) Unwrap() error {
	return e.Err
}
