// Package lockstore persists lockfiles as JSON documents.
package lockstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.LockStore using one JSON document per lockfile.
type Store struct {
	logger ports.Logger
}

// NewStore creates a lockfile store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Read loads the lockfile at path. Documents written by a newer format
// version are rejected; older ones load with zero values for fields
// they predate.
func (s *Store) Read(path string) (domain.Lockfile, error) {
	//nolint:gosec // Path comes from settings or flags
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Lockfile{}, zerr.With(domain.ErrLockNotFound, "path", path)
		}
		return domain.Lockfile{}, zerr.Wrap(err, domain.ErrLockReadFailed.Error())
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return domain.Lockfile{}, zerr.Wrap(err, domain.ErrLockParseFailed.Error())
	}

	if lock.Version > domain.LockfileVersion {
		err := zerr.With(domain.ErrLockVersionUnsupported, "version", lock.Version)
		return domain.Lockfile{}, zerr.With(err, "supported", domain.LockfileVersion)
	}

	s.logger.Debug(fmt.Sprintf("read %s (%d pins)", path, len(lock.Pins)))

	return lock, nil
}

// Write atomically replaces the lockfile at path.
func (s *Store) Write(path string, lock domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockMarshalFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrLockWriteFailed.Error())
	}

	s.logger.Debug(fmt.Sprintf("wrote %s (%d pins)", path, len(lock.Pins)))

	return nil
}

// Exists reports whether a lockfile is present at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "pindown-*.lock")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
