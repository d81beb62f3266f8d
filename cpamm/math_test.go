package cpamm

import (
	"errors"
	"math"
	"testing"
)

func TestSwapBaseIn(t *testing.T) {
	out, err := swapBaseIn(1_000_000, 1_000_000_000, 500_000_000, 25, 10_000)
	if err != nil {
		t.Fatalf("swapBaseIn: %v", err)
	}
	if out != 498_252 {
		t.Fatalf("out = %d, want 498252", out)
	}
}

func TestSwapBaseInZeroAmount(t *testing.T) {
	out, err := swapBaseIn(0, 1_000_000, 1_000_000, 25, 10_000)
	if err != nil || out != 0 {
		t.Fatalf("out = %d, err = %v", out, err)
	}
}

func TestSwapBaseInFeeRoundsUp(t *testing.T) {
	// fee = ceil(3 * 25 / 10000) = 1, net in 2.
	out, err := swapBaseIn(3, 1_000, 1_000, 25, 10_000)
	if err != nil {
		t.Fatalf("swapBaseIn: %v", err)
	}
	if out != 1_000*2/(1_000+2) {
		t.Fatalf("out = %d", out)
	}
}

func TestSwapBaseInInvalidFee(t *testing.T) {
	if _, err := swapBaseIn(1, 1, 1, 1, 0); !errors.Is(err, ErrInvalidFeeConfig) {
		t.Fatalf("zero denominator err = %v", err)
	}
	if _, err := swapBaseIn(1, 1, 1, 10_000, 10_000); !errors.Is(err, ErrInvalidFeeConfig) {
		t.Fatalf("fee at 100%% err = %v", err)
	}
}

func TestSwapBaseInReserveOverflow(t *testing.T) {
	if _, err := swapBaseIn(math.MaxUint64, 2, 1, 25, 10_000); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("err = %v, want ErrAmountTooLarge", err)
	}
}
