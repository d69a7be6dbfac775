package blueprint

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// IDSource yields unique component ids. The pipeline takes it as an injected
// capability so tests can supply a deterministic generator.
type IDSource interface {
	NextID() string
}

// idEpoch keeps generated ids short: timestamps are encoded relative to it.
const idEpoch = 1735689600000 // 2025-01-01 UTC, milliseconds

// RandomIDSource is the production IDSource: a base-36 relative timestamp
// plus a monotonic counter plus two random bytes.
type RandomIDSource struct {
	mu      sync.Mutex
	counter uint64
}

func NewRandomIDSource() *RandomIDSource { return &RandomIDSource{} }

func (s *RandomIDSource) NextID() string {
	s.mu.Lock()
	s.counter++
	n := s.counter
	s.mu.Unlock()

	ts := strconv.FormatInt(time.Now().UnixMilli()-idEpoch, 36)
	var buf [2]byte
	_, _ = rand.Read(buf[:])
	return ts + strconv.FormatUint(n, 36) + hex.EncodeToString(buf[:])
}

// SequenceIDSource is a deterministic IDSource for tests: gen_01, gen_02, ...
type SequenceIDSource struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequenceIDSource(prefix string) *SequenceIDSource {
	if prefix == "" {
		prefix = "gen"
	}
	return &SequenceIDSource{prefix: prefix}
}

func (s *SequenceIDSource) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s_%02d", s.prefix, s.n)
}
