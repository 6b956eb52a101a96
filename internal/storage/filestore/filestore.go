// Package filestore provides a JSON file implementation of the storage.Store interface.
//
// Layout:
//
//	<dir>/registry.json        identities and active group codes
//	<dir>/groups/<CODE>.json   one record per group
//
// Every write goes to a temp file that is renamed over the target.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

const (
	registryFile = "registry.json"
	groupsDir    = "groups"
)

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

var validCode = regexp.MustCompile(`^[A-Z0-9]+$`)

// FileStore implements storage.Store on the local filesystem.
// It serialises writers inside one process only.
type FileStore struct {
	dir    string
	regMu  sync.Mutex
	groups *keyedMutex
}

// New creates a FileStore rooted at dir, creating the directories it needs.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, groupsDir), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir, groups: newKeyedMutex()}, nil
}

// Close is a no-op; the store holds no open handles.
func (s *FileStore) Close() error { return nil }

// LoadRegistry reads the registry file.
func (s *FileStore) LoadRegistry(ctx context.Context) (*models.Registry, error) {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	return s.readRegistry()
}

// UpdateRegistry reads, modifies and atomically rewrites the registry file.
func (s *FileStore) UpdateRegistry(ctx context.Context, fn func(*models.Registry) error) error {
	s.regMu.Lock()
	defer s.regMu.Unlock()

	reg, err := s.readRegistry()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, registryFile), reg); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// CreateGroup writes a new group file.
func (s *FileStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if !validCode.MatchString(group.Code) {
		return fmt.Errorf("invalid group code %q", group.Code)
	}
	path, _ := s.groupPath(group.Code)

	unlock := s.groups.Lock(group.Code)
	defer unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: group %s", storage.ErrExists, group.Code)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check group: %w", err)
	}

	if err := writeJSON(path, group); err != nil {
		return fmt.Errorf("failed to write group: %w", err)
	}
	return nil
}

// GetGroup reads a group file.
func (s *FileStore) GetGroup(ctx context.Context, code string) (*models.Group, error) {
	path, err := s.groupPath(code)
	if err != nil {
		return nil, err
	}

	unlock := s.groups.Lock(code)
	defer unlock()

	return readGroup(path, code)
}

// UpdateGroup reads, modifies and atomically rewrites a group file.
func (s *FileStore) UpdateGroup(ctx context.Context, code string, fn func(*models.Group) error) error {
	path, err := s.groupPath(code)
	if err != nil {
		return err
	}

	unlock := s.groups.Lock(code)
	defer unlock()

	group, err := readGroup(path, code)
	if err != nil {
		return err
	}
	if err := fn(group); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeJSON(path, group); err != nil {
		return fmt.Errorf("failed to write group: %w", err)
	}
	return nil
}

// DeleteGroup removes a group file.
func (s *FileStore) DeleteGroup(ctx context.Context, code string) error {
	path, err := s.groupPath(code)
	if err != nil {
		return err
	}

	unlock := s.groups.Lock(code)
	defer unlock()

	if err := os.Remove(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
	} else if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (s *FileStore) readRegistry() (*models.Registry, error) {
	reg := models.NewRegistry()
	if _, err := readJSON(filepath.Join(s.dir, registryFile), reg); err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	reg.Normalize()
	return reg, nil
}

// groupPath maps a code to its file. Codes outside [A-Z0-9] cannot name a
// group, so they never reach the filesystem.
func (s *FileStore) groupPath(code string) (string, error) {
	if !validCode.MatchString(code) {
		return "", fmt.Errorf("%w: group %q", storage.ErrNotFound, code)
	}
	return filepath.Join(s.dir, groupsDir, code+".json"), nil
}

func readGroup(path, code string) (*models.Group, error) {
	group := &models.Group{}
	found, err := readJSON(path, group)
	if err != nil {
		return nil, fmt.Errorf("failed to read group: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
	}
	return group, nil
}
