package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

// CashCutFileStore keeps every cash cut in one JSON array on disk. It is
// safe for concurrent use inside one process only.
type CashCutFileStore struct {
	path string
	mu   sync.Mutex
}

func NewCashCutFileStore(path string) (*CashCutFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errs.Wrapf(err, "failed to create cash cut directory for %s", path)
	}
	return &CashCutFileStore{path: path}, nil
}

func (s *CashCutFileStore) FindByKey(ctx context.Context, key string) (*cashcut.CashCut, error) {
	return s.find(ctx, func(c *cashcut.CashCut) bool { return c.IdempotencyKey == key })
}

func (s *CashCutFileStore) FindByID(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error) {
	return s.find(ctx, func(c *cashcut.CashCut) bool { return c.ID == id })
}

func (s *CashCutFileStore) LatestPeriodEnd(ctx context.Context) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cuts, err := s.load()
	if err != nil {
		return nil, err
	}
	var latest *time.Time
	for _, c := range cuts {
		if latest == nil || c.PeriodEnd.After(*latest) {
			end := c.PeriodEnd
			latest = &end
		}
	}
	return latest, nil
}

func (s *CashCutFileStore) List(ctx context.Context, limit int) ([]*cashcut.CashCut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cuts, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cuts, func(i, j int) bool {
		return cuts[i].CreatedAt.After(cuts[j].CreatedAt)
	})
	if limit > 0 && len(cuts) > limit {
		cuts = cuts[:limit]
	}
	return cuts, nil
}

// Insert appends cut unless a cut with the same key already exists, in which
// case the stored one is returned with inserted=false. A cut starting before
// the latest stored end is rejected with CONFLICT.
func (s *CashCutFileStore) Insert(ctx context.Context, cut *cashcut.CashCut) (*cashcut.CashCut, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cuts, err := s.load()
	if err != nil {
		return nil, false, err
	}
	for _, c := range cuts {
		if c.IdempotencyKey == cut.IdempotencyKey {
			return c, false, nil
		}
	}
	for _, c := range cuts {
		if c.PeriodEnd.After(cut.PeriodStart) {
			return nil, false, infra.WrapRepoErr("cash cut period already closed", nil, infra.KindConflict)
		}
	}

	if err := s.save(append(cuts, cut)); err != nil {
		return nil, false, err
	}
	return cut, true, nil
}

func (s *CashCutFileStore) find(ctx context.Context, match func(*cashcut.CashCut) bool) (*cashcut.CashCut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cuts, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range cuts {
		if match(c) {
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr("cash cut not found", nil, infra.KindNotFound)
}

func (s *CashCutFileStore) load() ([]*cashcut.CashCut, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*cashcut.CashCut{}, nil
		}
		return nil, infra.WrapRepoErr("failed to read cash cut file", err, infra.KindDBFailure)
	}
	if len(data) == 0 {
		return []*cashcut.CashCut{}, nil
	}
	var cuts []*cashcut.CashCut
	if err := json.Unmarshal(data, &cuts); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cash cut file", err, infra.KindDBFailure)
	}
	return cuts, nil
}

// save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a partial file.
func (s *CashCutFileStore) save(cuts []*cashcut.CashCut) error {
	data, err := json.MarshalIndent(cuts, "", "  ")
	if err != nil {
		return infra.WrapRepoErr("failed to encode cash cuts", err, infra.KindDBFailure)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return infra.WrapRepoErr("failed to create temp cash cut file", err, infra.KindDBFailure)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return infra.WrapRepoErr("failed to write temp cash cut file", err, infra.KindDBFailure)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return infra.WrapRepoErr("failed to sync temp cash cut file", err, infra.KindDBFailure)
	}
	if err := tmp.Close(); err != nil {
		return infra.WrapRepoErr("failed to close temp cash cut file", err, infra.KindDBFailure)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return infra.WrapRepoErr("failed to replace cash cut file", err, infra.KindDBFailure)
	}
	return nil
}
