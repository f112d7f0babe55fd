package runguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/stats"
)

// Record is the persisted state of the run guard. A single instance lives
// at a well-known location and is overwritten on every transition.
type Record struct {
	Running        bool            `json:"running"`
	StartTime      time.Time       `json:"start_time,omitempty"`
	PID            int             `json:"pid,omitempty"`
	LastRunTime    time.Time       `json:"last_run_time,omitempty"`
	LastRunSuccess bool            `json:"last_run_success,omitempty"`
	LastRunStats   *stats.Snapshot `json:"last_run_stats,omitempty"`
}

// RecordStore gives the guard exclusive access to the persisted record.
// The file implementation below is the default; a deployment may swap in a
// distributed lock without changing the guard's state machine.
type RecordStore interface {
	// Lock takes exclusive ownership of the record across processes.
	Lock() error
	Unlock() error
	// Read returns the current record, or nil when none is persisted.
	Read() (*Record, error)
	Write(*Record) error
	Clear() error
}

// FileStore persists the record as a JSON document guarded by a sidecar
// flock, serializing read-modify-write sequences between processes on one
// host.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore builds a store writing the record to recordPath and taking
// the OS-level lock at lockPath.
func NewFileStore(recordPath, lockPath string) *FileStore {
	return &FileStore{path: recordPath, lock: flock.New(lockPath)}
}

func (s *FileStore) Lock() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire record lock: %w", err)
	}
	return nil
}

func (s *FileStore) Unlock() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release record lock: %w", err)
	}
	return nil
}

func (s *FileStore) Read() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read run record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse run record: %w", err)
	}
	return &rec, nil
}

func (s *FileStore) Write(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear run record: %w", err)
	}
	return nil
}
