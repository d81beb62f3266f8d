package venue

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNotInitialized is returned by Quote/Bounds/BuildSwapInstruction
	// before a successful UpdateState.
	ErrNotInitialized = errors.New("venue has not had its accounts loaded")

	// ErrExactOutNotSupported is returned for ExactOut requests by venues
	// that only implement ExactIn.
	ErrExactOutNotSupported = errors.New("exact-out swaps are not supported")

	// ErrInactive marks a venue that exists on-chain but is disabled for
	// trading (e.g. a treasury stoptap).
	ErrInactive = errors.New("venue is inactive")
)

// StateError reports required venue state that is missing or unparsable.
// Key names the offending account, Field the state element within it.
type StateError struct {
	Key   solana.PublicKey
	Field string
	Err   error
}

func (e *StateError) Error() string {
	msg := fmt.Sprintf("state %s not loaded for account %s", e.Field, e.Key)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StateError) Unwrap() error { return e.Err }

// TokenIndexError reports a token index outside the venue's metadata.
type TokenIndexError struct {
	Index int
	Len   int
}

func (e *TokenIndexError) Error() string {
	return fmt.Sprintf("token info does not extend to index %d (have %d)", e.Index, e.Len)
}

// InvalidMintError reports a mint the venue does not trade.
type InvalidMintError struct {
	Mint solana.PublicKey
}

func (e *InvalidMintError) Error() string {
	return "invalid mint: " + e.Mint.String()
}
