package cpamm

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// PoolStatus gates whether the pool accepts swaps.
type PoolStatus uint64

const (
	PoolStatusUninitialized PoolStatus = 0
	PoolStatusInitialized   PoolStatus = 1
	PoolStatusDisabled      PoolStatus = 2
)

// Pool is the on-chain pool account layout. The cumulative swap counters
// are 128-bit on chain and stay 128-bit here.
type Pool struct {
	Status             uint64
	Nonce              uint64
	BaseMint           solana.PublicKey
	QuoteMint          solana.PublicKey
	BaseVault          solana.PublicKey
	QuoteVault         solana.PublicKey
	LpMint             solana.PublicKey
	SwapFeeNumerator   uint64
	SwapFeeDenominator uint64
	SwapBaseInAmount   binary.Uint128
	SwapQuoteInAmount  binary.Uint128
}

// DecodePool parses a raw pool account.
func DecodePool(data []byte) (*Pool, error) {
	p := &Pool{}
	if err := binary.NewBinDecoder(data).Decode(p); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	return p, nil
}

func (p *Pool) TradingEnabled() bool {
	return PoolStatus(p.Status) == PoolStatusInitialized
}

// Authority derives the pool authority from the stored nonce.
func (p *Pool) Authority() (solana.PublicKey, error) {
	return solana.CreateProgramAddress(
		[][]byte{[]byte(authoritySeed), {uint8(p.Nonce)}},
		ProgramID,
	)
}
