package workflow

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/props_backend/config"
)

const propStatusLockTTL = 10 * time.Second

// acquirePropLock serializes the follow-up dedup window per prop across
// instances. Strictly best-effort: without redis, or when the lock is
// contended, the caller proceeds unlocked — the dedup check is a mitigation,
// not a guarantee, and must never block a status update.
func (w *StatusWorkflow) acquirePropLock(ctx context.Context, propId string) func() {
	if w.Locker == nil {
		return func() {}
	}
	lock, err := w.Locker.Obtain(ctx, "prop-status:"+propId, propStatusLockTTL, nil)
	if err != nil {
		if err != redislock.ErrNotObtained {
			config.LogWarn(w.Logger, "workflow", "acquirePropLock", "obtain", map[string]any{
				"prop_id": propId,
			}, err.Error())
		}
		return func() {}
	}
	return func() {
		_ = lock.Release(context.Background())
	}
}
