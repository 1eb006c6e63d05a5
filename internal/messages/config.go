package messages

// Config messages for installation paths and configuration loading.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt          = "missing config file %s: %w"
	ConfigInvalidConfigFmt        = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt     = "%s contains unrecognized keys: %v."
	ConfigValidationGuidance      = "Fix .distup/config.toml and re-run the command."
	ConfigRepositoriesRequiredFmt = "%s: at least one [[repositories]] entry is required"
	ConfigRepositoryIDRequiredFmt = "%s: repositories[%d].id is required"
	ConfigRepositoryIDDupFmt      = "%s: repositories[%d].id %q duplicates repositories[%d].id"
	ConfigRepositoryURLReqFmt     = "%s: repositories[%d].url is required"
	ConfigRepositoryURLBadFmt     = "%s: repositories[%d].url %q: %w"
	ConfigNegativeValueFmt        = "%s: %s must not be negative"
	ConfigInstallationMissingFmt  = "path %s does not contain an installation managed by distup (missing %s)"
)
