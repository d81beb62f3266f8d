package cpamm

import (
	"errors"
	"math/big"

	"github.com/titanswap/titan-go/safemath"
)

var (
	ErrInvalidFeeConfig = errors.New("swap fee numerator must be below denominator")
	ErrAmountTooLarge   = errors.New("amount exceeds pool capacity")
)

// swapBaseIn computes the exact-in constant-product output: the swap fee is
// taken from the input (rounded up, against the trader), then
// out = reserveOut * netIn / (reserveIn + netIn), all in wide integers.
func swapBaseIn(amountIn, reserveIn, reserveOut, feeNumerator, feeDenominator uint64) (uint64, error) {
	if feeDenominator == 0 || feeNumerator >= feeDenominator {
		return 0, ErrInvalidFeeConfig
	}
	if amountIn == 0 {
		return 0, nil
	}

	// The pool cannot absorb input that overflows its reserve counter.
	if _, err := safemath.AddU64(reserveIn, amountIn); err != nil {
		return 0, ErrAmountTooLarge
	}

	fee, err := safemath.MulDivCeilU64(amountIn, feeNumerator, feeDenominator)
	if err != nil {
		return 0, err
	}
	netIn, err := safemath.SubU64(amountIn, fee)
	if err != nil {
		return 0, err
	}

	num := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), new(big.Int).SetUint64(netIn))
	den := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(netIn))
	out := num.Quo(num, den)

	return safemath.U64FromBig(out)
}
