package accountcache

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// shardCount buckets keep independent keys from contending on one mutex.
// Pubkeys are uniformly distributed, so the first key byte is shard-safe.
const shardCount = 32

type shard struct {
	mu sync.RWMutex
	// entries maps a key to its resolved record. A nil value means the
	// account is confirmed absent on-chain; a key with no entry at all has
	// simply never been fetched. The two must stay distinguishable.
	entries map[solana.PublicKey]*Account
}

// store is the concurrent resolved-account table behind Cache. It grows
// monotonically between reset calls; there is no per-key eviction.
type store struct {
	shards [shardCount]shard
}

func newStore() *store {
	s := &store{}
	for i := range s.shards {
		s.shards[i].entries = make(map[solana.PublicKey]*Account)
	}
	return s
}

func (s *store) shardFor(key solana.PublicKey) *shard {
	return &s.shards[key[0]%shardCount]
}

// load returns the resolved record for key. resolved reports whether the key
// has an entry at all; acc is nil for a confirmed-absent account.
func (s *store) load(key solana.PublicKey) (acc *Account, resolved bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	acc, resolved = sh.entries[key]
	sh.mu.RUnlock()
	return acc, resolved
}

// put records a resolved fetch outcome, including negative ones (acc == nil).
// Same-key races are last-write-wins; resolved values for one key are
// referentially stable until an explicit reset.
func (s *store) put(key solana.PublicKey, acc *Account) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.entries[key] = acc
	sh.mu.Unlock()
}

func (s *store) reset() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.entries = make(map[solana.PublicKey]*Account)
		sh.mu.Unlock()
	}
}

func (s *store) size() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
