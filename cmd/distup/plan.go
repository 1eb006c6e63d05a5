package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/installation"
	"github.com/conn-castle/distup/internal/manifest"
	"github.com/conn-castle/distup/internal/messages"
	"github.com/conn-castle/distup/internal/update"
)

type planJSON struct {
	FeaturePacks []featurePackJSON `json:"feature_packs"`
	Artifacts    []artifactJSON    `json:"artifacts"`
}

type featurePackJSON struct {
	Producer  string `json:"producer"`
	Installed string `json:"installed"`
	New       string `json:"new"`
}

type artifactJSON struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func newUpdatePlanCmd() *cobra.Command {
	var (
		outputJSON bool
		showDiff   bool
	)
	cmd := &cobra.Command{
		Use:   messages.UpdatePlanUse,
		Short: messages.UpdatePlanShort,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseTarget(args)
			if err != nil {
				return err
			}
			inst, err := openInstallation(args[0], installation.Options{})
			if err != nil {
				return err
			}
			defer func() { _ = inst.Close() }()

			updater, err := newUpdater(inst, update.AlwaysConfirm)
			if err != nil {
				return err
			}
			summary, err := updater.Preview(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(toPlanJSON(summary))
			}
			if _, err := fmt.Fprintln(out, messages.UpdatePlanDryRunHeader); err != nil {
				return err
			}
			if summary.IsEmpty() {
				if _, err := fmt.Fprintln(out, messages.UpdateNoUpdates); err != nil {
					return err
				}
			} else if err := printSummary(out, summary); err != nil {
				return err
			}
			if showDiff {
				return writeManifestDiff(out, inst.Manifest(), summary.Artifacts)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, messages.UpdatePlanFlagJSON)
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.UpdatePlanFlagDiff)
	return cmd
}

func toPlanJSON(summary update.Summary) planJSON {
	plan := planJSON{
		FeaturePacks: make([]featurePackJSON, 0, len(summary.FeaturePacks)),
		Artifacts:    make([]artifactJSON, 0, len(summary.Artifacts)),
	}
	for _, fp := range summary.FeaturePacks {
		plan.FeaturePacks = append(plan.FeaturePacks, featurePackJSON{Producer: fp.Producer, Installed: fp.InstalledBuild, New: fp.NewBuild})
	}
	for _, action := range summary.Artifacts {
		plan.Artifacts = append(plan.Artifacts, artifactJSON{
			GroupID:    action.Old.GroupID,
			ArtifactID: action.Old.ArtifactID,
			From:       action.Old.Version,
			To:         action.New.Version,
		})
	}
	return plan
}

// writeManifestDiff renders the manifest before and after the artifact
// actions. Feature-pack contents are only known once a pack is applied.
func writeManifestDiff(out io.Writer, current *manifest.Manifest, actions []update.UpdateAction) error {
	if _, err := fmt.Fprintln(out, messages.UpdatePlanManifestDiffHead); err != nil {
		return err
	}
	before, err := current.Marshal()
	if err != nil {
		return err
	}
	updated := make([]gav.Artifact, 0, len(actions))
	for _, action := range actions {
		updated = append(updated, action.New)
	}
	next, err := manifest.New(current.Path(), current.Artifacts())
	if err != nil {
		return err
	}
	next.RegisterUpdates(updated)
	after, err := next.Marshal()
	if err != nil {
		return err
	}
	diff := udiff.Unified("manifest.toml (installed)", "manifest.toml (planned)", string(before), string(after))
	if diff == "" {
		_, err := fmt.Fprintln(out, messages.UpdatePlanNoManifestDiff)
		return err
	}
	_, err = fmt.Fprint(out, diff)
	return err
}
