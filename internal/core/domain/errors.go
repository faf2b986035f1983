package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when a version string does not follow the packaging version scheme.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidSpecifier is returned when a constraint clause has an unknown operator or a malformed version.
	ErrInvalidSpecifier = zerr.New("invalid version specifier")

	// ErrEmptyPackageName is returned when a requirement line carries constraints but no package name.
	ErrEmptyPackageName = zerr.New("requirement is missing a package name")

	// ErrInvalidPackageName is returned when a package name contains characters outside the allowed set.
	ErrInvalidPackageName = zerr.New("package name must start and end with a letter or digit and may contain '.', '-', '_'")

	// ErrInvalidExtra is returned when an extra inside brackets is not a well-formed name.
	ErrInvalidExtra = zerr.New("invalid extra name")

	// ErrInvalidRequirement is returned when a requirement line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrDuplicateRequirement is returned when a manifest already holds a requirement for the same normalized name.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrConflictingConstraints is returned when constraint clauses for one package exclude each other.
	ErrConflictingConstraints = zerr.New("conflicting constraints")

	// ErrManifestNotFound is returned when the requirements file does not exist.
	ErrManifestNotFound = zerr.New("requirements file not found")

	// ErrManifestReadFailed is returned when the requirements file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read requirements file")

	// ErrManifestParseFailed is returned when the requirements file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse requirements file")

	// ErrManifestWriteFailed is returned when the requirements file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write requirements file")

	// ErrLintFailed is returned when a manifest has lint errors.
	ErrLintFailed = zerr.New("manifest has lint errors")

	// ErrNotCanonical is returned by format checking when the manifest is not in canonical form.
	ErrNotCanonical = zerr.New("manifest is not canonically formatted")

	// ErrManifestsDiffer is returned by diffing when the manifests declare different dependencies.
	ErrManifestsDiffer = zerr.New("manifests differ")

	// ErrLockNotFound is returned when the lockfile does not exist.
	ErrLockNotFound = zerr.New("lockfile not found")

	// ErrLockReadFailed is returned when the lockfile cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lockfile")

	// ErrLockParseFailed is returned when the lockfile cannot be unmarshaled.
	ErrLockParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockMarshalFailed is returned when the lockfile cannot be marshaled.
	ErrLockMarshalFailed = zerr.New("failed to marshal lockfile")

	// ErrLockWriteFailed is returned when the lockfile cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockVersionUnsupported is returned when the lockfile format version is newer than this build understands.
	ErrLockVersionUnsupported = zerr.New("unsupported lockfile version")

	// ErrLockUnsatisfied is returned when a locked pin no longer satisfies the manifest constraints.
	ErrLockUnsatisfied = zerr.New("lockfile does not satisfy requirements")

	// ErrLockIncomplete is returned when the manifest names a package the lockfile does not pin.
	ErrLockIncomplete = zerr.New("lockfile is missing packages")

	// ErrPackageNotFound is returned when the package index has no project with the requested name.
	ErrPackageNotFound = zerr.New("package not found in index")

	// ErrIndexRequestFailed is returned when a package index request fails.
	ErrIndexRequestFailed = zerr.New("failed to query package index")

	// ErrIndexParseFailed is returned when a package index response cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse package index response")

	// ErrIndexFileReadFailed is returned when a local index document cannot be read.
	ErrIndexFileReadFailed = zerr.New("failed to read index file")

	// ErrIndexCacheCreateFailed is returned when the index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create index cache directory")

	// ErrIndexCacheReadFailed is returned when reading from the index cache fails.
	ErrIndexCacheReadFailed = zerr.New("failed to read from index cache")

	// ErrIndexCacheWriteFailed is returned when writing to the index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to index cache")

	// ErrCacheMiss is returned in offline mode when a package is not present in the index cache.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrNoMatchingVersion is returned when no released version satisfies a requirement's constraints.
	ErrNoMatchingVersion = zerr.New("no version satisfies constraints")

	// ErrResolutionFailed is returned when resolution cannot pin every requirement.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrSettingsEnvParseFailed is returned when a settings environment variable cannot be parsed.
	ErrSettingsEnvParseFailed = zerr.New("failed to parse settings from environment")

	// ErrSettingsInvalid is returned when layered settings fail validation.
	ErrSettingsInvalid = zerr.New("invalid settings")

	// ErrHashFailed is returned when hashing manifest content fails.
	ErrHashFailed = zerr.New("failed to hash manifest content")

	// ErrWatchFailed is returned when the file watcher cannot observe the manifest.
	ErrWatchFailed = zerr.New("failed to watch requirements file")
)
