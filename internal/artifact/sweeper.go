package artifact

import (
	"context"
	"errors"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"github.com/talentwire/intake-api/internal/store"
	"go.uber.org/zap"
)

// Sweeper removes filesystem artifacts whose owning applicant row is gone,
// typically left behind when a crash interrupted intake between the artifact
// write and its compensation.
type Sweeper struct {
	store     store.Store
	artifacts *FileStore
	interval  time.Duration
}

func NewSweeper(s store.Store, artifacts *FileStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:     s,
		artifacts: artifacts,
		interval:  interval,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := jitterbug.New(s.interval, &jitterbug.Norm{Stdev: 30 * time.Second, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				zap.S().Named("sweeper").Errorf("artifact sweep failed: %v", err)
			}
		}
	}
}

// Sweep scans the artifact root once and deletes orphans. Keys that do not
// follow the canonical naming are left alone.
func (s *Sweeper) Sweep(ctx context.Context) error {
	keys, err := s.artifacts.List(ctx)
	if err != nil {
		return err
	}

	removed := 0
	for _, key := range keys {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		owner, ok := OwnerOf(key)
		if !ok {
			continue
		}

		_, err := s.store.Applicant().Get(ctx, owner)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		if err := s.artifacts.Delete(ctx, key); err != nil {
			zap.S().Named("sweeper").Errorf("failed to remove orphan %q: %v", key, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		zap.S().Named("sweeper").Infof("removed %d orphan artifacts", removed)
	}
	return nil
}
