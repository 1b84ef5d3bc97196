package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/quasilyte/gdata"
)

var (
	// ErrNotFound is returned when no recording is stored under a name.
	ErrNotFound = errors.New("replay: recording not found")
	// ErrInvalidName is returned for names that cannot be used as storage keys.
	ErrInvalidName = errors.New("replay: invalid recording name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

const keyPrefix = "replay_"

// Store persists recordings in the per-user application data directory.
type Store struct {
	m *gdata.Manager
}

// Open opens the store for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open replay store: %w", err)
	}
	return &Store{m: m}, nil
}

func key(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return keyPrefix + name, nil
}

// Save writes rec under rec.Name, replacing any previous recording.
func (s *Store) Save(rec *Recording) error {
	k, err := key(rec.Name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	if err := s.m.SaveItem(k, data); err != nil {
		return fmt.Errorf("save recording %s: %w", rec.Name, err)
	}
	return nil
}

// Load reads the recording stored under name.
func (s *Store) Load(name string) (*Recording, error) {
	k, err := key(name)
	if err != nil {
		return nil, err
	}
	if !s.m.ItemExists(k) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := s.m.LoadItem(k)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode recording %s: %w", name, err)
	}
	return &rec, nil
}

// Exists reports whether a recording is stored under name.
func (s *Store) Exists(name string) bool {
	k, err := key(name)
	if err != nil {
		return false
	}
	return s.m.ItemExists(k)
}

// Delete removes the recording stored under name.
func (s *Store) Delete(name string) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	if !s.m.ItemExists(k) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := s.m.DeleteItem(k); err != nil {
		return fmt.Errorf("delete recording %s: %w", name, err)
	}
	return nil
}
