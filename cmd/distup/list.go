package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/distup/internal/installation"
	"github.com/conn-castle/distup/internal/messages"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := openInstallation(args[0], installation.Options{})
			if err != nil {
				return err
			}
			defer func() { _ = inst.Close() }()

			out := cmd.OutOrStdout()
			artifacts := inst.Artifacts()
			if len(artifacts) == 0 {
				_, err := fmt.Fprintln(out, messages.ListEmpty)
				return err
			}
			for _, a := range artifacts {
				line := a.Gav.String()
				if a.Classifier != "" {
					line += ":" + a.Classifier
				}
				if a.Channel != "" {
					line += fmt.Sprintf(messages.ListChannelSuffixFmt, a.Channel)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
