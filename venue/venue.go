// Package venue defines the contract every Titan-routable liquidity source
// implements: state refresh through the shared account cache, pure quoting,
// admissible-amount boundaries, and swap instruction construction.
package venue

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/titanswap/titan-go/accountcache"
)

// SwapType selects which side of the swap the request amount fixes.
//
// Routing currently only issues ExactIn requests. Implementations must
// support ExactIn and may return ErrExactOutNotSupported for ExactOut.
type SwapType uint8

const (
	ExactIn SwapType = iota
	ExactOut
)

// QuoteRequest asks a venue what a hypothetical swap would yield. All
// amounts are raw integer atoms, never UI-scaled.
type QuoteRequest struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	Amount     uint64
	SwapType   SwapType
}

// QuoteResult is a computed exchange outcome; nothing is executed.
type QuoteResult struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	// Amount of input atoms the venue would actually consume.
	Amount uint64
	// ExpectedOutput is the number of output atoms produced.
	ExpectedOutput uint64
	// NotEnoughLiquidity is set when the venue cannot absorb the full
	// requested input. The quote then covers only the consumable part.
	NotEnoughLiquidity bool
}

// AccountsCache is the account-read capability handed to UpdateState. The
// concrete implementation is accountcache.Cache; tests substitute fixed maps.
//
// GetAccounts must return results in input order, one entry per requested
// key, with nil for confirmed-absent accounts.
type AccountsCache interface {
	GetAccount(ctx context.Context, key solana.PublicKey) (*accountcache.Account, error)
	GetAccounts(ctx context.Context, keys []solana.PublicKey) ([]*accountcache.Account, error)
}

// TradingVenue is implemented by every integrated AMM, orderbook or
// proprietary liquidity engine.
//
// Lifecycle: a venue starts uninitialized and may only report Initialized
// after an UpdateState call succeeded completely. A failed refresh must
// leave prior state untouched; readiness is never asserted for data that
// failed to load.
//
// Quote must be side-effect-free and tolerate a zero amount: boundary
// scanning probes it hundreds of times per Bounds call and assumes no
// cumulative effect across calls.
type TradingVenue interface {
	// Initialized reports whether quoting is permitted.
	Initialized() bool

	// ProgramID is the venue's main on-chain program.
	ProgramID() solana.PublicKey

	// MarketID uniquely identifies the market/pool instance.
	MarketID() solana.PublicKey

	// Protocol identifies the venue's protocol family.
	Protocol() Protocol

	// TokenInfos returns mint metadata for every tradable token.
	TokenInfos() []TokenInfo

	// RequiredAccounts lists the keys UpdateState needs, derived purely
	// from static venue configuration.
	RequiredAccounts() ([]solana.PublicKey, error)

	// UpdateState resolves RequiredAccounts through the cache and
	// deserializes them into internal pricing state.
	UpdateState(ctx context.Context, cache AccountsCache) error

	// Quote computes a hypothetical swap outcome from loaded state.
	Quote(request QuoteRequest) (QuoteResult, error)

	// Bounds returns the smallest and largest input amounts that still
	// produce a valid quote for the token pair at the given indices.
	Bounds(tokenInIdx, tokenOutIdx uint8) (uint64, uint64, error)

	// BuildSwapInstruction constructs the on-chain swap instruction. It
	// must build from the request amounts, never from quote outputs.
	BuildSwapInstruction(request QuoteRequest, user solana.PublicKey) (solana.Instruction, error)
}

// Token returns the token metadata at index i of v's TokenInfos.
func Token(v TradingVenue, i int) (TokenInfo, error) {
	infos := v.TokenInfos()
	if i < 0 || i >= len(infos) {
		return TokenInfo{}, &TokenIndexError{Index: i, Len: len(infos)}
	}
	return infos[i], nil
}

// Label is a human-readable venue description for logs and diagnostics.
func Label(v TradingVenue) string {
	return v.Protocol().String() + ":" + v.MarketID().String()
}
