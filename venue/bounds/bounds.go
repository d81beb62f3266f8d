// Package bounds locates the maximal input range over which a venue quotes
// validly, treating the pricing function as an opaque black box.
//
// The search runs in two phases: a coarse exponential sweep brackets the
// onset and end of validity, then each bracket is narrowed by binary search.
// A quote counts as valid when it returned without error, reported enough
// liquidity and produced a nonzero output.
//
// The search is stateless and reentrant; it assumes the pricing function is
// pure, since a single FindBoundaries call may probe it hundreds of times.
package bounds

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/titanswap/titan-go/venue"
)

// scalingFactor grows the probe amount each coarse step.
const scalingFactor = 2

// boundaryTolerance is the absolute bracket width, in atoms, at which
// refinement stops. Bounds are raw integer token units; resolving them finer
// than this is not worth the extra quote probes.
const boundaryTolerance = 100

var (
	// ErrBoundarySearchFailed means the explored domain collapsed to a
	// single degenerate point. The venue should be marked unroutable.
	ErrBoundarySearchFailed = errors.New("boundary search collapsed to a degenerate interval")

	// ErrNoQuotableValue means no probed amount produced a valid quote
	// anywhere in the domain. Normal for an illiquid or disabled venue.
	ErrNoQuotableValue = errors.New("no quotable value found in the input domain")
)

var logger = zap.NewNop()

// SetLogger routes invariant diagnostics somewhere visible. The search never
// fails on a violated refinement invariant, it only logs it.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// PricingFunc computes a quote for an input amount. Errors are treated as
// invalid probe points, never as search failures.
type PricingFunc func(amount uint64) (venue.QuoteResult, error)

func validQuote(q venue.QuoteResult) bool {
	return !q.NotEnoughLiquidity && q.ExpectedOutput > 0
}

func probeValid(f PricingFunc, amount uint64) bool {
	q, err := f(amount)
	return err == nil && validQuote(q)
}

func saturatingMul(x uint64) uint64 {
	if x > math.MaxUint64/scalingFactor {
		return math.MaxUint64
	}
	return x * scalingFactor
}

// findBoundariesCoarse performs the exponential sweep. It returns four
// amounts bracketing the valid region:
//
//	lowerLow  invalid → lowerHigh valid   (onset of validity)
//	upperLow  valid   → upperHigh invalid (end of validity)
//
// Doubling is guarded against overflow: when a step would not strictly grow
// the probe, the bracket saturates to MaxUint64 and the phase ends. A
// saturated lowerHigh is the no-valid-point-anywhere signal.
func findBoundariesCoarse(f PricingFunc) (lowerLow, lowerHigh, upperLow, upperHigh uint64) {
	lowerLow = 0
	lowerHigh = 1

	for !probeValid(f, lowerHigh) {
		lowerLow = lowerHigh
		lowerHigh = saturatingMul(lowerHigh)

		if lowerHigh <= lowerLow || lowerHigh == math.MaxUint64 {
			logger.Error("lower search saturated without finding a valid quote",
				zap.Uint64("lowerLow", lowerLow),
			)
			lowerHigh = math.MaxUint64
			break
		}
	}

	upperLow = lowerHigh
	upperHigh = saturatingMul(upperLow)

	if upperHigh <= upperLow {
		// Overflowed straight away; the upper bracket is a point.
		upperHigh = upperLow
		return lowerLow, lowerHigh, upperLow, upperHigh
	}

	for probeValid(f, upperHigh) {
		upperLow = upperHigh
		upperHigh = saturatingMul(upperHigh)

		if upperHigh <= upperLow || upperHigh == math.MaxUint64 {
			upperHigh = math.MaxUint64
			break
		}
	}

	return lowerLow, lowerHigh, upperLow, upperHigh
}

// refineLower narrows an (invalid low, valid high) bracket to the smallest
// valid amount.
func refineLower(f PricingFunc, low, high uint64) uint64 {
	if probeValid(f, low) {
		logger.Error("lower bracket start quotes validly; refinement invariant violated",
			zap.Uint64("low", low))
	}
	if !probeValid(f, high) {
		logger.Error("lower bracket end quotes invalidly; refinement invariant violated",
			zap.Uint64("high", high))
	}

	for high-low > boundaryTolerance {
		// high/2 + low/2 cannot overflow near MaxUint64, (low+high)/2 can.
		mid := high/2 + low/2
		if probeValid(f, mid) {
			high = mid
		} else {
			low = mid
		}
	}
	return high
}

// refineUpper narrows a (valid low, invalid high) bracket to the largest
// valid amount.
func refineUpper(f PricingFunc, low, high uint64) uint64 {
	if !probeValid(f, low) {
		logger.Error("upper bracket start quotes invalidly; refinement invariant violated",
			zap.Uint64("low", low))
	}
	if high != math.MaxUint64 && probeValid(f, high) {
		logger.Error("upper bracket end quotes validly; refinement invariant violated",
			zap.Uint64("high", high))
	}

	for high-low > boundaryTolerance {
		mid := high/2 + low/2
		if probeValid(f, mid) {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// FindBoundaries returns (lowerBound, upperBound) such that every amount in
// the closed interval yields a valid quote and amounts outside it, within
// the explored domain and the refinement tolerance, do not.
func FindBoundaries(f PricingFunc) (uint64, uint64, error) {
	lowerLow, lowerHigh, upperLow, upperHigh := findBoundariesCoarse(f)

	if lowerLow == upperHigh {
		return 0, 0, ErrBoundarySearchFailed
	}
	if lowerHigh == math.MaxUint64 {
		return 0, 0, ErrNoQuotableValue
	}

	lowerBound := refineLower(f, lowerLow, lowerHigh)
	upperBound := refineUpper(f, upperLow, upperHigh)

	return lowerBound, upperBound, nil
}

// ForVenue runs FindBoundaries over v's ExactIn quote function for the token
// pair at the given indices. Venue implementations delegate Bounds to it.
func ForVenue(v venue.TradingVenue, tokenInIdx, tokenOutIdx uint8) (uint64, uint64, error) {
	if !v.Initialized() {
		return 0, 0, venue.ErrNotInitialized
	}

	tokenIn, err := venue.Token(v, int(tokenInIdx))
	if err != nil {
		return 0, 0, err
	}
	tokenOut, err := venue.Token(v, int(tokenOutIdx))
	if err != nil {
		return 0, 0, err
	}

	f := func(amount uint64) (venue.QuoteResult, error) {
		return v.Quote(venue.QuoteRequest{
			InputMint:  tokenIn.Mint,
			OutputMint: tokenOut.Mint,
			Amount:     amount,
			SwapType:   venue.ExactIn,
		})
	}
	return FindBoundaries(f)
}
