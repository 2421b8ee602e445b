// Package runsnapshots persists completed enrichment runs in a WAL so the
// web layer can replay recent history to late subscribers.
package runsnapshots

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vaultlens/vaultlens/internal/domain"
)

const (
	defaultSnapshotDir   = "./wal/runs"
	snapshotSegmentLimit = 1000
	snapshotMaxSegments  = 100
	snapshotKeyPrefix    = "run_snapshot_"
)

// WALStore is an append-only store of enrichment run snapshots.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed store under the provided directory.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultSnapshotDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "snapshot_",
		SegmentThreshold: snapshotSegmentLimit,
		MaxSegments:      snapshotMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init run snapshot WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the snapshot. Callers must ensure ChainID is set.
func (s *WALStore) Save(snapshot domain.RunSnapshot) error {
	if s == nil || s.wal == nil {
		return errors.New("run snapshot store is not initialized")
	}
	if snapshot.ChainID == "" {
		return fmt.Errorf("run snapshot chain id is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "marshal run snapshot")
	}

	key := fmt.Sprintf("%s%s", snapshotKeyPrefix, snapshot.ChainID)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// SnapshotsAfter returns all run snapshots written after the given index.
func (s *WALStore) SnapshotsAfter(index uint64) ([]domain.RunSnapshotRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("run snapshot store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.RunSnapshotRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil || !strings.HasPrefix(key, snapshotKeyPrefix) {
			continue
		}
		var snapshot domain.RunSnapshot
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			return nil, errors.Wrap(err, "decode run snapshot")
		}
		records = append(records, domain.RunSnapshotRecord{
			Index:    idx,
			Snapshot: snapshot,
		})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("run snapshot store is not initialized")
	}
	return s.wal.Close()
}
