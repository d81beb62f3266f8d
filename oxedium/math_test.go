package oxedium

import (
	"errors"
	"testing"
)

func feed(price int64, exponent int32) *PriceFeedMessage {
	return &PriceFeedMessage{Price: price, Exponent: exponent}
}

func TestComputeSwapMath(t *testing.T) {
	// 2 tokens at $50 into a $2 asset, same decimals, no fee: 50 units out.
	res, err := computeSwapMath(2, feed(50_0000_0000, -8), feed(2_0000_0000, -8), 6, 6, 0)
	if err != nil {
		t.Fatalf("computeSwapMath: %v", err)
	}
	if res.grossAmountOut != 50 || res.feeAmount != 0 || res.netAmountOut != 50 {
		t.Fatalf("result = %+v", res)
	}
}

func TestComputeSwapMathDecimalScaling(t *testing.T) {
	// 1e9 atoms of a 9-decimal $100 asset into a 6-decimal $1 asset:
	// 100 units = 1e8 atoms gross, 30 bps fee of 300000 atoms.
	res, err := computeSwapMath(1_000_000_000, feed(100_0000_0000, -8), feed(1_0000_0000, -8), 9, 6, 30)
	if err != nil {
		t.Fatalf("computeSwapMath: %v", err)
	}
	if res.grossAmountOut != 100_000_000 {
		t.Fatalf("gross = %d", res.grossAmountOut)
	}
	if res.feeAmount != 300_000 {
		t.Fatalf("fee = %d", res.feeAmount)
	}
	if res.netAmountOut != 99_700_000 {
		t.Fatalf("net = %d", res.netAmountOut)
	}
}

func TestComputeSwapMathMixedExponents(t *testing.T) {
	// Same prices expressed at different exponents must agree.
	a, err := computeSwapMath(1_000, feed(5_0000_0000, -8), feed(1_0000_0000, -8), 6, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := computeSwapMath(1_000, feed(5_00000, -5), feed(1_0, -1), 6, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.netAmountOut != b.netAmountOut {
		t.Fatalf("exponent normalization broken: %d != %d", a.netAmountOut, b.netAmountOut)
	}
}

func TestComputeSwapMathFeeRoundsUp(t *testing.T) {
	// gross 3, 1 bps fee: ceil(3/10000) = 1 atom, against the trader.
	res, err := computeSwapMath(3, feed(1_0000_0000, -8), feed(1_0000_0000, -8), 6, 6, 1)
	if err != nil {
		t.Fatalf("computeSwapMath: %v", err)
	}
	if res.feeAmount != 1 || res.netAmountOut != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestComputeSwapMathRejectsBadInputs(t *testing.T) {
	if _, err := computeSwapMath(1, feed(0, -8), feed(1, -8), 6, 6, 0); !errors.Is(err, ErrNonPositivePrice) {
		t.Fatalf("zero price err = %v", err)
	}
	if _, err := computeSwapMath(1, feed(-5, -8), feed(1, -8), 6, 6, 0); !errors.Is(err, ErrNonPositivePrice) {
		t.Fatalf("negative price err = %v", err)
	}
	if _, err := computeSwapMath(1, feed(1, -8), feed(1, -8), 6, 6, 10_001); !errors.Is(err, ErrInvalidFee) {
		t.Fatalf("oversized fee err = %v", err)
	}
}
