// Package memory keeps the hand-off slot in process memory, with every value
// sealed in a memguard enclave while it is at rest.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/mpyw/fmtview/internal/handoff"
)

// sealed is one value held in an enclave. Empty values have no enclave.
type sealed struct {
	enclave *memguard.Enclave
}

func seal(value string) sealed {
	if value == "" {
		return sealed{}
	}

	buf := []byte(value)
	enclave := memguard.NewEnclave(buf)
	memguard.WipeBytes(buf)

	return sealed{enclave: enclave}
}

func (s sealed) open() (string, error) {
	if s.enclave == nil {
		return "", nil
	}

	lb, err := s.enclave.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open enclave: %w", err)
	}
	defer lb.Destroy()

	return string(lb.Bytes()), nil
}

// Store is an in-process hand-off slot.
type Store struct {
	mu     sync.Mutex
	values map[string]sealed
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]sealed)}
}

// Put implements handoff.Store.
func (s *Store) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = seal(value)

	return nil
}

// Take implements handoff.Store.
func (s *Store) Take(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", false, nil
	}

	delete(s.values, key)

	value, err := v.open()
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Peek implements handoff.Peeker.
func (s *Store) Peek(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", false, nil
	}

	value, err := v.open()
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.values)
}

// init makes memguard wipe its enclave keys when the process is interrupted.
func init() {
	memguard.CatchInterrupt()
}

var (
	_ handoff.Store  = (*Store)(nil)
	_ handoff.Peeker = (*Store)(nil)
)
