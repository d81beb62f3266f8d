package titan

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/titanswap/titan-go/accountcache"
	"github.com/titanswap/titan-go/venue"
)

type mapSource struct {
	accounts map[solana.PublicKey]*accountcache.Account
	fetches  int
}

func (s *mapSource) FetchOne(ctx context.Context, key solana.PublicKey) (*accountcache.Account, error) {
	s.fetches++
	return s.accounts[key], nil
}

func (s *mapSource) FetchMany(ctx context.Context, keys []solana.PublicKey) ([]*accountcache.Account, error) {
	s.fetches++
	out := make([]*accountcache.Account, len(keys))
	for i, key := range keys {
		out[i] = s.accounts[key]
	}
	return out, nil
}

func TestCacheAndBoundarySearchTogether(t *testing.T) {
	key := solana.PublicKey{1}
	src := &mapSource{accounts: map[solana.PublicKey]*accountcache.Account{
		key: {Lamports: 1, Data: []byte{0xAB}},
	}}

	cache := NewAccountCache(src)
	acc, err := cache.GetAccount(context.Background(), key)
	if err != nil || acc == nil {
		t.Fatalf("GetAccount: %v %+v", err, acc)
	}
	if _, err := cache.GetAccount(context.Background(), key); err != nil {
		t.Fatal(err)
	}
	if src.fetches != 1 {
		t.Fatalf("fetches = %d, want 1", src.fetches)
	}

	// A pricing function valid on [2000, 64000] is bracketed to tolerance.
	f := func(amount uint64) (venue.QuoteResult, error) {
		if amount < 2000 || amount > 64000 {
			return venue.QuoteResult{NotEnoughLiquidity: true}, nil
		}
		return venue.QuoteResult{Amount: amount, ExpectedOutput: amount / 2}, nil
	}
	lower, upper, err := FindBoundaries(f)
	if err != nil {
		t.Fatalf("FindBoundaries: %v", err)
	}
	if lower < 2000 || lower > 2100 || upper > 64000 || upper < 63900 {
		t.Fatalf("bounds = (%d, %d)", lower, upper)
	}
}
