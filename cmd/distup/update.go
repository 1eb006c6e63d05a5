package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/distup/internal/featurepack"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/installation"
	"github.com/conn-castle/distup/internal/messages"
	"github.com/conn-castle/distup/internal/update"
)

func newUpdateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Long:  messages.UpdateLong,
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

			out := cmd.OutOrStdout()
			updater, err := newUpdater(inst, terminalConfirmer(cmd.InOrStdin(), out, yes))
			if err != nil {
				return err
			}

			var result update.Result
			if target != nil {
				result, err = updater.ApplyTarget(cmd.Context(), target.GroupID, target.ArtifactID)
			} else {
				result, err = updater.ApplyAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printResult(out, result)
		},
	}
	cmd.AddCommand(newUpdatePlanCmd())

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.UpdateFlagYes)
	return cmd
}

// newUpdater wires the update engine to an opened installation.
func newUpdater(inst *installation.Installation, confirmer update.Confirmer) (*update.Updater, error) {
	repo, err := openRepository(inst.Config, inst.Paths)
	if err != nil {
		return nil, err
	}
	planner := featurepack.NewChannelPlanner(inst.Paths.FeaturePacksPath, repo, inst.Modules(), inst)
	return update.New(update.Options{
		Store:      inst,
		Repository: repo,
		Planner:    planner,
		Layout:     inst.Modules(),
		Confirmer:  confirmer,
	})
}

// parseTarget reads the optional groupId:artifactId argument.
func parseTarget(args []string) (*gav.Key, error) {
	if len(args) < 2 {
		return nil, nil
	}
	g, err := gav.ParseGav(args[1])
	if err != nil || g.Version != "" {
		return nil, fmt.Errorf(messages.UpdateTargetInvalidFmt, args[1])
	}
	key := g.Key()
	return &key, nil
}

// terminalConfirmer prints the summary and asks before anything is applied.
// With yes set the question is skipped.
func terminalConfirmer(in io.Reader, out io.Writer, yes bool) update.Confirmer {
	return update.ConfirmFunc(func(summary update.Summary) (bool, error) {
		if err := printSummary(out, summary); err != nil {
			return false, err
		}
		ok := yes
		if !yes {
			var err error
			if isTerminal() {
				err = runConfirmForm(messages.UpdateConfirmTitle, &ok)
			} else {
				ok, err = promptContinue(in, out)
			}
			if err != nil {
				return false, err
			}
		}
		if ok {
			if _, err := fmt.Fprintln(out, messages.UpdateApplying); err != nil {
				return false, err
			}
		}
		return ok, nil
	})
}

func printSummary(out io.Writer, summary update.Summary) error {
	if len(summary.FeaturePacks) > 0 {
		if _, err := fmt.Fprintln(out, messages.UpdateFeaturePackHeader); err != nil {
			return err
		}
		for _, fp := range summary.FeaturePacks {
			if _, err := fmt.Fprintf(out, messages.UpdateFeaturePackLineFmt, fp.Producer, fp.InstalledBuild, fp.NewBuild); err != nil {
				return err
			}
		}
	}
	if len(summary.Artifacts) > 0 {
		if _, err := fmt.Fprintln(out, messages.UpdateArtifactHeader); err != nil {
			return err
		}
		for _, action := range summary.Artifacts {
			if _, err := fmt.Fprintf(out, messages.UpdateArtifactLineFmt, action); err != nil {
				return err
			}
		}
	}
	return nil
}

func printResult(out io.Writer, result update.Result) error {
	switch result.Status {
	case update.StatusNothingToDo:
		_, err := fmt.Fprintln(out, messages.UpdateNoUpdates)
		return err
	case update.StatusCancelled:
		_, err := color.New(color.FgYellow).Fprintln(out, messages.UpdateCancelled)
		return err
	}
	if len(result.Skipped) > 0 {
		if _, err := fmt.Fprintf(out, messages.UpdateSkippedFmt, len(result.Skipped)); err != nil {
			return err
		}
	}
	_, err := color.New(color.FgGreen).Fprintf(out, messages.UpdateAppliedFmt, len(result.Applied), len(result.FeaturePackArtifacts))
	return err
}
