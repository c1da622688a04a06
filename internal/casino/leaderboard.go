package casino

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type LeaderboardEntry struct {
	UID    int64           `json:"uid"`
	Profit decimal.Decimal `json:"profit"`
}

type Leaderboard struct {
	data map[int64]decimal.Decimal
	mu   sync.Mutex
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		data: make(map[int64]decimal.Decimal),
	}
}

func (l *Leaderboard) Record(uid int64, profit decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data[uid] = l.data[uid].Add(profit)
}

func (l *Leaderboard) Top(n int) []LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []LeaderboardEntry

	for uid, profit := range l.data {
		entries = append(entries, LeaderboardEntry{
			UID:    uid,
			Profit: profit,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Profit.GreaterThan(entries[j].Profit)
	})

	if len(entries) > n {
		return entries[:n]
	}

	return entries
}
