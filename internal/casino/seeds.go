package casino

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// SeedManager holds the current server seed. Players only see its hash
// until the seed rotates, after which past rounds become verifiable.
type SeedManager struct {
	mu         sync.Mutex
	serverSeed string
	hash       string
	rotatedAt  time.Time
}

func NewSeedManager() *SeedManager {
	s := &SeedManager{}
	s.rotate()
	return s
}

func generateSeed() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (s *SeedManager) rotate() {
	seed := generateSeed()
	hash := sha256.Sum256([]byte(seed))

	s.serverSeed = seed
	s.hash = hex.EncodeToString(hash[:])
	s.rotatedAt = time.Now()
}

func (s *SeedManager) MaybeRotate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.rotatedAt).Hours() > 24 {
		s.rotate()
	}
}

// Snapshot returns the active seed and its public hash.
func (s *SeedManager) Snapshot() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverSeed, s.hash
}
