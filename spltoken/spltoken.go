// Package spltoken decodes SPL token program account layouts: mints and
// token (vault) accounts. Venues use it to turn raw cached account bytes
// into balances and decimals for quoting.
package spltoken

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccount is a decoded SPL token account. Only the fields quoting
// needs are surfaced; the raw layout carries more.
type TokenAccount struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
	State  AccountState
}

func (a *TokenAccount) Initialized() bool {
	return a.State != AccountStateUninitialized
}

func (a *TokenAccount) Frozen() bool {
	return a.State == AccountStateFrozen
}

// tokenAccountLayout is the fixed 165-byte SPL token account wire layout.
// COption fields are a 4-byte tag followed by an always-present value.
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             *solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             *uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       *solana.PublicKey
}

// DecodeTokenAccount parses raw token account bytes.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	raw := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, fmt.Errorf("decode token account: %w", err)
	}
	return &TokenAccount{
		Mint:   raw.Mint,
		Owner:  raw.Owner,
		Amount: raw.Amount,
		State:  AccountState(raw.State),
	}, nil
}

// Mint is a decoded SPL mint plus the program that owns it, which decides
// whether the mint is a Token-2022 asset.
type Mint struct {
	token.Mint
	// OwnerProgram is the owner of the mint account itself.
	OwnerProgram solana.PublicKey
}

func (m *Mint) IsToken2022() bool {
	return m.OwnerProgram.Equals(solana.Token2022ProgramID)
}

// DecodeMint parses raw mint account bytes. ownerProgram is the account's
// owner field, carried alongside the layout.
//
// The layout is decoded directly rather than through token.Mint.Decode,
// which reassigns its receiver and leaves the caller's struct zeroed.
func DecodeMint(data []byte, ownerProgram solana.PublicKey) (*Mint, error) {
	mint := token.Mint{}
	if err := binary.NewBinDecoder(data).Decode(&mint); err != nil {
		return nil, fmt.Errorf("decode mint: %w", err)
	}
	return &Mint{Mint: mint, OwnerProgram: ownerProgram}, nil
}
