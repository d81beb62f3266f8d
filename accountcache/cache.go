// Package accountcache provides a concurrent, negative-caching account table
// shared by every venue in a router process.
//
// The cache turns many overlapping account reads into a minimal set of remote
// calls: hits are served from an in-memory sharded table, misses are grouped
// into a single batched fetch, and every resolved outcome (including
// confirmed absence) is written back so repeat lookups never touch the
// network again. Invalidation is wholesale only: Reset clears the table when
// the caller knows upstream state moved (e.g. a new block); there is no TTL.
package accountcache

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache composes a Source with the sharded store behind a cache-first,
// batch-fetch-on-miss contract. One Cache is constructed per process and
// passed by reference to every venue that needs account state.
type Cache struct {
	source Source
	table  *store
	logger *zap.Logger

	// flight coalesces concurrent single-key misses when enabled. Off by
	// default: duplicate in-flight fetches for one key are harmless
	// (last-write-wins, values converge) and skipping the registry keeps the
	// hot path allocation-free.
	flight *singleflight.Group
}

type Option func(*Cache)

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithSingleFlight coalesces concurrent misses for the same key into one
// remote call. Worth enabling when the source charges per request.
func WithSingleFlight() Option {
	return func(c *Cache) { c.flight = new(singleflight.Group) }
}

func New(source Source, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		table:  newStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAccount returns the account for key, fetching it remotely at most once.
// A nil result with nil error means the account is confirmed absent.
func (c *Cache) GetAccount(ctx context.Context, key solana.PublicKey) (*Account, error) {
	if acc, resolved := c.table.load(key); resolved {
		return acc, nil
	}

	if c.flight != nil {
		v, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
			return c.fetchOne(ctx, key)
		})
		if err != nil {
			return nil, err
		}
		return v.(*Account), nil
	}

	return c.fetchOne(ctx, key)
}

func (c *Cache) fetchOne(ctx context.Context, key solana.PublicKey) (*Account, error) {
	acc, err := c.source.FetchOne(ctx, key)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	c.table.put(key, acc)
	return acc, nil
}

// GetAccounts resolves keys through the cache, batching all still-unresolved
// keys into a single remote call. The result is index-aligned with keys and
// always has len(keys) entries; absent accounts are nil.
func (c *Cache) GetAccounts(ctx context.Context, keys []solana.PublicKey) ([]*Account, error) {
	result := make([]*Account, len(keys))

	// Partition into hits and distinct misses.
	var missing []solana.PublicKey
	seen := make(map[solana.PublicKey]struct{})
	hit := make([]bool, len(keys))
	for i, key := range keys {
		if acc, resolved := c.table.load(key); resolved {
			result[i] = acc
			hit[i] = true
			continue
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			missing = append(missing, key)
		}
	}

	if len(missing) == 0 {
		return result, nil
	}

	c.logger.Debug("fetching unresolved accounts",
		zap.Int("requested", len(keys)),
		zap.Int("missing", len(missing)),
	)

	fetched, err := c.source.FetchMany(ctx, missing)
	if err != nil {
		// Nothing is committed for a failed batch.
		return nil, &FetchError{Err: err}
	}
	if len(fetched) != len(missing) {
		return nil, &FetchError{Err: fmt.Errorf("source returned %d accounts for %d keys", len(fetched), len(missing))}
	}

	byKey := make(map[solana.PublicKey]*Account, len(missing))
	for i, key := range missing {
		byKey[key] = fetched[i]
		c.table.put(key, fetched[i])
	}

	// Backfill misses preserving the caller's order.
	for i, key := range keys {
		if !hit[i] {
			result[i] = byKey[key]
		}
	}
	return result, nil
}

// Seed inserts a resolved record directly, bypassing the source. acc may be
// nil to record confirmed absence. Used by tests and snapshot loaders.
func (c *Cache) Seed(key solana.PublicKey, acc *Account) {
	c.table.put(key, acc)
}

// Reset drops every cached entry. Call it when upstream state is known stale;
// staleness detection itself lives with the caller.
func (c *Cache) Reset() {
	c.table.reset()
}

// Size reports the number of resolved entries currently held.
func (c *Cache) Size() int {
	return c.table.size()
}
