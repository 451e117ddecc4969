package runs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vcnkl/xbuild/models"
)

// maxEntries bounds the on-disk history.
const maxEntries = 50

type TargetRecord struct {
	Triple     string `json:"triple"`
	Success    bool   `json:"success"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
}

type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Revision  string         `json:"revision,omitempty"`
	Success   bool           `json:"success"`
	Targets   []TargetRecord `json:"targets"`
}

// Store keeps a rolling history of orchestration runs as JSON.
type Store struct {
	path    string
	entries []*Entry
	mu      sync.RWMutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read runs file %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = json.Unmarshal(data, &s.entries); err != nil {
		return fmt.Errorf("failed to parse runs file %s: %w", s.path, err)
	}

	return nil
}

func (s *Store) Append(entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[len(s.entries)-maxEntries:]
	}
}

func (s *Store) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err = os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write runs file %s: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename runs file: %w", err)
	}

	return nil
}

// FromReport converts a finished run into a history entry.
func FromReport(rep *models.Report, revision string) *Entry {
	entry := &Entry{
		Timestamp: rep.Started,
		Revision:  revision,
		Success:   rep.OK(),
	}

	for _, res := range rep.Results {
		entry.Targets = append(entry.Targets, TargetRecord{
			Triple:     res.Triple.String(),
			Success:    res.Success,
			ExitCode:   res.ExitCode,
			DurationMs: res.Duration.Milliseconds(),
		})
	}

	return entry
}
