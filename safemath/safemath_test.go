package safemath

import (
	"errors"
	"math"
	"testing"
)

func TestAddU64(t *testing.T) {
	if got, err := AddU64(1, 2); err != nil || got != 3 {
		t.Fatalf("AddU64(1,2) = %d, %v", got, err)
	}
	if got, err := AddU64(math.MaxUint64, 0); err != nil || got != math.MaxUint64 {
		t.Fatalf("AddU64(max,0) = %d, %v", got, err)
	}
	if _, err := AddU64(math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("AddU64(max,1) err = %v", err)
	}
}

func TestSubU64(t *testing.T) {
	if got, err := SubU64(10, 4); err != nil || got != 6 {
		t.Fatalf("SubU64(10,4) = %d, %v", got, err)
	}
	if _, err := SubU64(4, 10); !errors.Is(err, ErrOverflow) {
		t.Fatalf("SubU64(4,10) err = %v", err)
	}
}

func TestMulDivU64(t *testing.T) {
	// The product exceeds 64 bits but the quotient fits.
	if got, err := MulDivU64(math.MaxUint64, 2, 4); err != nil || got != math.MaxUint64/2 {
		t.Fatalf("MulDivU64 = %d, %v", got, err)
	}
	if got, err := MulDivU64(7, 3, 2); err != nil || got != 10 {
		t.Fatalf("truncation: got %d, %v", got, err)
	}
	if _, err := MulDivU64(math.MaxUint64, 3, 2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("overflowing quotient err = %v", err)
	}
	if _, err := MulDivU64(1, 1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("zero denominator err = %v", err)
	}
}

func TestMulDivCeilU64(t *testing.T) {
	if got, err := MulDivCeilU64(7, 3, 2); err != nil || got != 11 {
		t.Fatalf("ceil(21/2) = %d, %v", got, err)
	}
	if got, err := MulDivCeilU64(8, 3, 2); err != nil || got != 12 {
		t.Fatalf("exact division must not round: %d, %v", got, err)
	}
	if got, err := MulDivCeilU64(0, 30, BpsDenominator); err != nil || got != 0 {
		t.Fatalf("zero input fee = %d, %v", got, err)
	}
	if _, err := MulDivCeilU64(math.MaxUint64, math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("overflowing ceil err = %v", err)
	}
}

func TestSlippageHelpers(t *testing.T) {
	// 1% slippage on 1_000_000 atoms.
	if got, err := MinAmountWithSlippage(1_000_000, 100); err != nil || got != 990_000 {
		t.Fatalf("MinAmountWithSlippage = %d, %v", got, err)
	}
	if got, err := MaxAmountWithSlippage(1_000_000, 100); err != nil || got != 1_010_000 {
		t.Fatalf("MaxAmountWithSlippage = %d, %v", got, err)
	}

	// Slippage above 100% clamps the minimum to zero.
	if got, err := MinAmountWithSlippage(1_000_000, 20_000); err != nil || got != 0 {
		t.Fatalf("clamped min = %d, %v", got, err)
	}

	if _, err := MaxAmountWithSlippage(math.MaxUint64, 100); !errors.Is(err, ErrOverflow) {
		t.Fatalf("overflowing max err = %v", err)
	}
}
