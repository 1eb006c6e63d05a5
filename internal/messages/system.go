package messages

// System messages for internal operations.
const (
	// FsutilCreateTempFmt formats temp file creation errors.
	FsutilCreateTempFmt = "create temp file for %s: %w"
	FsutilWriteTempFmt  = "write temp file for %s: %w"
	FsutilSyncTempFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFmt  = "close temp file for %s: %w"
	FsutilChmodTempFmt  = "chmod temp file for %s: %w"
	FsutilRenameFmt     = "move temp file into place at %s: %w"

	LockOpenFmt    = "open lock %s: %w"
	LockFmt        = "lock %s: %w"
	LockTimeoutFmt = "another update is running against this installation; timed out waiting for lock after %s"

	InstallationRootRequired = "installation path is required"
)
