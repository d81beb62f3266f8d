// Package titan ties venue integrations together for the routing layer: a
// shared account cache, the venue contract and the boundary search that
// establishes safe quoting ranges.
package titan

import (
	"github.com/titanswap/titan-go/accountcache"
	"github.com/titanswap/titan-go/venue"
	"github.com/titanswap/titan-go/venue/bounds"
)

// NewAccountCache creates the process-wide account cache.
//
// Example:
//
// cache := titan.NewAccountCache(accountcache.NewRPCSource(rpcClient))
//
// venue.UpdateState(ctx, cache)
//
// lo, hi, _ := venue.Bounds(0, 1)
var NewAccountCache = accountcache.New

// NewRPCSource wraps an RPC client as the cache's remote account source.
var NewRPCSource = accountcache.NewRPCSource

// FindBoundaries locates the valid input range of any pricing function.
var FindBoundaries = bounds.FindBoundaries

// TradingVenue is the contract every integrated liquidity source implements.
type TradingVenue = venue.TradingVenue

// QuoteRequest and QuoteResult are the quoting exchange types.
type (
	QuoteRequest = venue.QuoteRequest
	QuoteResult  = venue.QuoteResult
)
