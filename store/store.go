// Package store persists simulation results and sweep reports as JSON files
// under a results directory and lists them back newest first.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result kinds.
const (
	KindSimulation = "simulation"
	KindSweep      = "sweep"
)

// ErrNotFound is returned by Load when no result exists for an export ID.
var ErrNotFound = errors.New("result not found")

// ErrInvalidID is returned for export IDs that are not plain file stems.
var ErrInvalidID = errors.New("invalid export id")

var (
	validID   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	validKind = regexp.MustCompile(`^[a-z]+$`)
)

// Entry describes one stored result.
type Entry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"type"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Store is a directory of exported results. It is safe for concurrent use
// as long as callers do not race on the same export ID.
type Store struct {
	dir string
	now func() time.Time
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("results directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the results directory.
func (s *Store) Dir() string {
	return s.dir
}

// NewID builds an export ID of the form <kind>_YYYYMMDD_HHMMSS_<8 hex>.
func (s *Store) NewID(kind string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s", kind, s.now().Format("20060102_150405"), suffix)
}

// Save writes v as indented JSON under a fresh export ID and returns the ID.
func (s *Store) Save(kind string, v any) (string, error) {
	if !validKind.MatchString(kind) {
		return "", fmt.Errorf("invalid result kind %q", kind)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", kind, err)
	}

	id := s.NewID(kind)
	tmp, err := os.CreateTemp(s.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", id, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("saving %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("saving %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		return "", fmt.Errorf("saving %s: %w", id, err)
	}

	logrus.Debugf("Exported %s result to %s", kind, s.path(id))
	return id, nil
}

// Load decodes the result stored under id into v.
func (s *Store) Load(id string, v any) error {
	data, err := s.Raw(id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", id, err)
	}
	return nil
}

// Raw returns the stored JSON for id unchanged.
func (s *Store) Raw(id string) ([]byte, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", id, err)
	}
	return data, nil
}

// List returns every stored result, newest first.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		entries = append(entries, Entry{
			ID:       id,
			Name:     name,
			Kind:     kindOf(id),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Modified.Equal(entries[j].Modified) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Modified.After(entries[j].Modified)
	})
	return entries, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func kindOf(id string) string {
	kind, _, found := strings.Cut(id, "_")
	if !found {
		return "unknown"
	}
	return kind
}
