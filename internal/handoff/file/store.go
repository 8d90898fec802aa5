// Package file keeps the hand-off slot in a JSON file in the user's home
// directory, optionally sealed with a passphrase.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/handoff/file/internal/crypt"
)

const (
	slotDirName  = ".fmtview"
	slotFileName = "handoff.json"
)

// ErrDecryptionFailed is returned when the slot is sealed and the passphrase is
// missing or wrong.
var ErrDecryptionFailed = crypt.ErrDecryptionFailed

// fileMu serializes access to slot files within the process.
//
//nolint:gochecknoglobals // process-wide mutex for file access synchronization
var fileMu sync.Mutex

//nolint:gochecknoglobals // test hook
var userHomeDirFunc = os.UserHomeDir

// Store is a hand-off slot backed by a single file.
type Store struct {
	path       string
	passphrase string
}

// DefaultPath returns ~/.fmtview/handoff.json.
func DefaultPath() (string, error) {
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, slotDirName, slotFileName), nil
}

// NewStore creates a Store at the default path.
func NewStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	return NewStoreWithPath(path), nil
}

// NewStoreWithPath creates a Store at path.
func NewStoreWithPath(path string) *Store {
	return &Store{path: path}
}

// SetPassphrase enables sealing. An empty passphrase writes plain JSON.
func (s *Store) SetPassphrase(passphrase string) {
	s.passphrase = passphrase
}

// Path returns the slot file path.
func (s *Store) Path() string {
	return s.path
}

// Put implements handoff.Store.
func (s *Store) Put(_ context.Context, key, value string) error {
	fileMu.Lock()
	defer fileMu.Unlock()

	slot, err := s.load()
	if err != nil {
		return err
	}

	slot[key] = value

	return s.save(slot)
}

// Take implements handoff.Store.
func (s *Store) Take(_ context.Context, key string) (string, bool, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	slot, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := slot[key]
	if !ok {
		return "", false, nil
	}

	delete(slot, key)

	if err := s.save(slot); err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Peek implements handoff.Peeker.
func (s *Store) Peek(_ context.Context, key string) (string, bool, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	slot, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := slot[key]

	return value, ok, nil
}

// Encrypted reports whether the slot file exists and is encrypted.
func (s *Store) Encrypted() (bool, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read hand-off file: %w", err)
	}

	return crypt.IsEncrypted(data), nil
}

// Delete removes the slot file without reading it.
func (s *Store) Delete() error {
	fileMu.Lock()
	defer fileMu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete hand-off file: %w", err)
	}

	return nil
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("failed to read hand-off file: %w", err)
	}

	if crypt.IsEncrypted(data) {
		if s.passphrase == "" {
			return nil, ErrDecryptionFailed
		}

		if data, err = crypt.Decrypt(data, s.passphrase); err != nil {
			return nil, err
		}
	}

	if data, err = decompress(data); err != nil {
		return nil, err
	}

	slot := map[string]string{}
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("failed to parse hand-off file: %w", err)
	}

	return slot, nil
}

func (s *Store) save(slot map[string]string) error {
	if len(slot) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove empty hand-off file: %w", err)
		}

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil { //nolint:mnd // owner-only directory permissions
		return fmt.Errorf("failed to create hand-off directory: %w", err)
	}

	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("failed to marshal hand-off slot: %w", err)
	}

	if data, err = compress(data); err != nil {
		return err
	}

	if s.passphrase != "" {
		if data, err = crypt.Encrypt(data, s.passphrase); err != nil {
			return fmt.Errorf("failed to encrypt hand-off slot: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil { //nolint:mnd // owner-only file permissions
		return fmt.Errorf("failed to write hand-off file: %w", err)
	}

	return nil
}

var (
	_ handoff.Store  = (*Store)(nil)
	_ handoff.Peeker = (*Store)(nil)
)
