package messages

// Manifest, repository, and update engine messages.
const (
	ManifestParseFailedFmt        = "unable to parse manifest at '%s': %v"
	ManifestSchemaVersionFmt      = "unsupported schema_version %d (expected %d)"
	ManifestArtifactFieldFmt      = "artifacts[%d]: %s is required"
	ManifestArtifactUnsafeFmt     = "artifacts[%d]: %w"
	ManifestDuplicateArtifactFmt  = "artifacts[%d]: %s is already recorded at version %s"
	ManifestEncodeFailedFmt       = "encode manifest: %w"
	ManifestWriteFailedFmt        = "unable to save manifest at '%s': %w"
	ManifestUpdateIdentityFmt     = "cannot update %s to %s: identities differ"
	ManifestUpdateNotInstalledFmt = "cannot update %s: not installed"
	ManifestUpdateStaleFmt        = "cannot update %s: installed version is %s, expected %s"
	ManifestDuplicateKeyFmt       = "duplicate artifact %s"

	GavInvalidCoordinateFmt = "invalid coordinate %q: expected groupId:artifactId[:version]"
	GavUnsafeFieldFmt       = "%s %q must not contain path separators or '..'"

	RepositoryRootRequired         = "repository root is required"
	RepositoryListVersionsFmt      = "list versions of %s: %w"
	RepositoryReadDescriptorFmt    = "read descriptor of %s: %w"
	RepositoryParseDescriptorFmt   = "parse descriptor %s: %w"
	RepositoryDescriptorEntryFmt   = "descriptor %s: dependencies[%d] requires group_id, artifact_id and version"
	RepositoryDescriptorUnsafeFmt  = "descriptor %s: dependencies[%d]: %w"
	RepositoryCreateRequestFmt     = "create request for %s: %w"
	RepositoryFetchFmt             = "fetch %s: %w"
	RepositoryUnexpectedStatusFmt  = "fetch %s: unexpected status %s"
	RepositoryDecodeMetadataFmt    = "decode metadata %s: %w"
	RepositoryCacheDirRequired     = "remote repository cache directory is required"
	RepositoryCreateCacheDirFmt    = "create cache dir %s: %w"
	RepositoryChainEmpty           = "at least one repository channel is required"
	RepositoryUnsupportedSchemeFmt = "unsupported repository url scheme %q"

	LayoutListFmt = "list installed files for %s: %w"

	FeaturePackReadRecordFmt   = "read feature-pack record %s: %w"
	FeaturePackParseRecordFmt  = "parse feature-pack record %s: %w"
	FeaturePackRecordEntryFmt  = "feature_packs[%d]: producer, group_id, artifact_id and version are required"
	FeaturePackWriteRecordFmt  = "write feature-pack record %s: %w"
	FeaturePackMissingFmt      = "feature pack %s is not recorded in this installation"
	FeaturePackNoDescriptorFmt = "feature pack %s has no artifact list"
	FeaturePackResolveFmt      = "resolve %s from feature pack %s: %w"
	FeaturePackInstallFmt      = "install %s from feature pack %s: %w"

	UpdateArtifactNotFoundFmt   = "artifact [%s:%s] not found"
	UpdateUnsatisfiableFmt      = "unable to find [%s:%s] in version >= %s"
	UpdateResolutionFailedFmt   = "resolve %s: %w"
	UpdateApplyFailedFmt        = "apply %s: %w"
	UpdatePlannerFailedFmt      = "feature-pack %s failed: %w"
	UpdateStoreRequired         = "update store is required"
	UpdateRepositoryRequired    = "update repository is required"
	UpdateConfirmerRequired     = "update confirmation handler is required"
	UpdateLayoutRequired        = "installation layout is required with a feature-pack planner"
	UpdateActionLineFmt         = "Update [%s, %s]:\t\t %s ==> %s"
	InstallationWriteContentFmt = "install %s: %w"
	InstallationRemoveOldFmt    = "remove previous file %s: %w"
	InstallationReadContentFmt  = "read content %s: %w"
	InstallationCreateDirFmt    = "create module dir %s: %w"
)
