package casino

import (
	"context"
	"encoding/json"
	"time"

	"casino-platform/internal/cache"
)

// SnapshotJob periodically publishes the top of the leaderboard to the
// cache so the public endpoint doesn't hit the hot map.
type SnapshotJob struct {
	Leaderboard *Leaderboard
	Interval    time.Duration
}

func (j *SnapshotJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			data, err := json.Marshal(j.Leaderboard.Top(10))
			if err != nil {
				continue
			}
			cache.Set("leaderboard:top", string(data))
		}
	}
}
