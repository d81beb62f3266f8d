// Package u128 converts between big/decimal values and the little-endian
// 128-bit integers that appear in on-chain account layouts.
package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// FromBig converts a non-negative big.Int into a Uint128.
func FromBig(v *big.Int) (binary.Uint128, error) {
	if v.Sign() < 0 {
		return binary.Uint128{}, errors.New("value cannot be negative")
	}
	if v.BitLen() > 128 {
		return binary.Uint128{}, errors.New("value overflows Uint128")
	}
	out := binary.NewUint128LittleEndian()
	out.Lo = v.Uint64()
	out.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return *out, nil
}

// FromDecimal converts an integral decimal into a Uint128.
func FromDecimal(d decimal.Decimal) (binary.Uint128, error) {
	return FromBig(d.Truncate(0).BigInt())
}

// FromString parses a base-10 integer string into a Uint128.
func FromString(num string) (binary.Uint128, error) {
	out := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(out)); err != nil {
		return binary.Uint128{}, err
	}
	return *out, nil
}
