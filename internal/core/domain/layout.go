package domain

import "path/filepath"

const (
	// PindownDirName is the name of the internal workspace directory.
	PindownDirName = ".pindown"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// IndexDirName is the name of the package index cache directory.
	IndexDirName = "index"

	// ManifestFileName is the default name of the requirements manifest.
	ManifestFileName = "requirements.txt"

	// LockFileName is the name of the lockfile.
	LockFileName = "pindown.lock"

	// SettingsFileName is the name of the project settings file.
	SettingsFileName = ".pindown.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultPindownPath returns the default root directory for pindown metadata.
func DefaultPindownPath() string {
	return PindownDirName
}

// DefaultIndexCachePath returns the default path for the package index cache.
// It joins .pindown, cache, and index.
func DefaultIndexCachePath() string {
	return filepath.Join(PindownDirName, CacheDirName, IndexDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .pindown and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(PindownDirName, DebugLogFile)
}
