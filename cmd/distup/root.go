package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/conn-castle/distup/internal/installation"
	"github.com/conn-castle/distup/internal/messages"
	"github.com/conn-castle/distup/internal/repository"
	"github.com/conn-castle/distup/internal/terminal"
)

var (
	isTerminal       = terminal.IsInteractive
	openInstallation = installation.Open
	openRepository   = repository.FromConfig
)

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logFile  string
		noColor  bool
	)
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLog(logLevel, logFile, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", log.WarnLevel.String(), messages.RootFlagLogLevel)
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", messages.RootFlagLogFile)
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, messages.RootFlagNoColor)

	cmd.AddCommand(newUpdateCmd(), newListCmd())
	return cmd
}

// initLog sets the global logrus level and output. An empty path logs to
// stderr; any other path is a size-rotated log file.
func initLog(level string, path string, stderr io.Writer) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf(messages.RootInvalidLogLevel, level, err)
	}
	log.SetLevel(parsed)
	if path == "" {
		log.SetOutput(stderr)
		return nil
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.ToSlash(path),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	})
	return nil
}
