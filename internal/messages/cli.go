package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "distup"
	// RootShort is the short description for the root command.
	RootShort           = "Track and update the artifacts of an installed distribution"
	RootFlagLogLevel    = "Diagnostic log level (panic, fatal, error, warn, info, debug, trace)"
	RootFlagLogFile     = "Write diagnostic logs to a rotated file instead of stderr"
	RootFlagNoColor     = "Disable colored output"
	RootInvalidLogLevel = "invalid log level %q: %w"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// UpdateUse is the update command usage.
	UpdateUse   = "update <installation> [groupId:artifactId]"
	UpdateShort = "Resolve and apply artifact and feature-pack updates"
	UpdateLong  = "Resolve the newest consistent set of artifact versions for an installation, " +
		"show the feature-pack and artifact updates that were found, and apply them after confirmation. " +
		"With a groupId:artifactId target only that artifact and its dependencies are considered."
	UpdateFlagYes = "Apply updates without asking for confirmation"

	// UpdatePlanUse is the dry-run subcommand usage.
	UpdatePlanUse      = "plan <installation> [groupId:artifactId]"
	UpdatePlanShort    = "Show the updates that would be applied without changing anything"
	UpdatePlanFlagJSON = "Print the plan as JSON"
	UpdatePlanFlagDiff = "Print a unified diff of the manifest before and after the plan"

	// ListUse is the list command usage.
	ListUse   = "list <installation>"
	ListShort = "List the artifacts recorded in an installation manifest"

	UpdateNoUpdates            = "No updates to execute"
	UpdateFeaturePackHeader    = "Feature pack updates:"
	UpdateFeaturePackLineFmt   = "%s   %s  ==>  %s\n"
	UpdateArtifactHeader       = "Artefact updates found: "
	UpdateArtifactLineFmt      = "%s\n"
	UpdateConfirmPrompt        = "Continue with update [y/n]: "
	UpdateConfirmRetryPrompt   = "Choose [y/n]: "
	UpdateConfirmTitle         = "Continue with update?"
	UpdateCancelled            = "Update cancelled"
	UpdateApplying             = "Applying updates"
	UpdateAppliedFmt           = "Updates applied: %d artifact(s), %d feature-pack artifact(s)\n"
	UpdateSkippedFmt           = "Skipped %d artifact update(s) already applied by feature packs\n"
	UpdateTargetInvalidFmt     = "invalid artifact coordinate %q: expected groupId:artifactId"
	UpdatePlanDryRunHeader     = "Update plan (dry-run): no files were written."
	UpdatePlanManifestDiffHead = "\nManifest changes:"
	UpdatePlanNoManifestDiff   = "  - (none)"
	UpdateConfirmReadFailedFmt = "read confirmation: %w"

	ListEmpty            = "No artifacts installed"
	ListChannelSuffixFmt = " (%s)"
)
