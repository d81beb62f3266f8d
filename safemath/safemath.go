// Package safemath performs checked fixed-width arithmetic for swap math.
// Wide intermediates go through big.Int so products of two uint64 values
// never wrap; any overflow back into uint64 surfaces as an error instead of
// silently truncating.
package safemath

import (
	"errors"
	"math"
	"math/big"
)

// BpsDenominator scales basis-point fees and slippage (10_000 bps = 100%).
const BpsDenominator = 10_000

var (
	ErrOverflow       = errors.New("checked math overflow")
	ErrDivisionByZero = errors.New("division by zero")
)

func AddU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func SubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// MulDivU64 computes a*b/den with a 128-bit intermediate, truncating.
func MulDivU64(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	quo := prod.Quo(prod, new(big.Int).SetUint64(den))
	return U64FromBig(quo)
}

// MulDivCeilU64 computes ceil(a*b/den) with a 128-bit intermediate.
func MulDivCeilU64(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	d := new(big.Int).SetUint64(den)
	quo, rem := new(big.Int).QuoRem(prod, d, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return U64FromBig(quo)
}

// U64FromBig converts a non-negative big.Int back to uint64, erroring when
// the value does not fit.
func U64FromBig(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}

// MinAmountWithSlippage lowers amount by slippageBps, used to derive a
// minimum acceptable output from a quoted output.
func MinAmountWithSlippage(amount, slippageBps uint64) (uint64, error) {
	if slippageBps > BpsDenominator {
		slippageBps = BpsDenominator
	}
	// mult <= BpsDenominator, so the result can never exceed amount.
	return MulDivU64(amount, BpsDenominator-slippageBps, BpsDenominator)
}

// MaxAmountWithSlippage raises amount by slippageBps, used to derive the
// maximum input a caller will spend on an exact-out swap.
func MaxAmountWithSlippage(amount, slippageBps uint64) (uint64, error) {
	mult, err := AddU64(BpsDenominator, slippageBps)
	if err != nil {
		return 0, err
	}
	return MulDivU64(amount, mult, BpsDenominator)
}
