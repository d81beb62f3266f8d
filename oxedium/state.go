package oxedium

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// anchorDiscriminatorLen prefixes every anchor account.
const anchorDiscriminatorLen = 8

// Treasury is the program-wide fee and kill-switch account.
type Treasury struct {
	// Stoptap halts all swaps when set.
	Stoptap bool
	Admin   solana.PublicKey
	FeeBps  uint64
}

// Vault holds one side of the venue's inventory together with the pyth
// feed that prices it.
type Vault struct {
	Mint             solana.PublicKey
	PythPriceAccount solana.PublicKey
	// CurrentLiquidity is the vault's spendable balance in atoms.
	CurrentLiquidity uint64
	Bump             uint8
}

// PriceFeedMessage is the pyth price payload embedded in PriceUpdateV2.
type PriceFeedMessage struct {
	FeedID          [32]byte
	Price           int64
	Conf            uint64
	Exponent        int32
	PrevPublishTime int64
	PublishTime     int64
}

// VerificationLevel mirrors the pyth enum: Partial{numSignatures} or Full.
type VerificationLevel struct {
	Full          bool
	NumSignatures uint8
}

func (v VerificationLevel) MarshalWithEncoder(enc *binary.Encoder) error {
	if v.Full {
		return enc.WriteUint8(1)
	}
	if err := enc.WriteUint8(0); err != nil {
		return err
	}
	return enc.WriteUint8(v.NumSignatures)
}

func (v *VerificationLevel) UnmarshalWithDecoder(dec *binary.Decoder) error {
	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	switch tag {
	case 0:
		v.Full = false
		v.NumSignatures, err = dec.ReadUint8()
		return err
	case 1:
		v.Full = true
		return nil
	default:
		return fmt.Errorf("invalid verification level tag %d", tag)
	}
}

// PriceUpdateV2 is a posted pyth price update account.
type PriceUpdateV2 struct {
	WriteAuthority    solana.PublicKey
	VerificationLevel VerificationLevel
	PriceMessage      PriceFeedMessage
	PostedSlot        uint64
}

// SwapIxData is the borsh payload of the swap instruction.
type SwapIxData struct {
	AmountIn     uint64
	MinAmountOut uint64
}

func decodeAnchor(data []byte, out interface{}) error {
	if len(data) < anchorDiscriminatorLen {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	return binary.NewBorshDecoder(data[anchorDiscriminatorLen:]).Decode(out)
}

// DecodeVault parses a vault account, discriminator included.
func DecodeVault(data []byte) (*Vault, error) {
	v := &Vault{}
	if err := decodeAnchor(data, v); err != nil {
		return nil, fmt.Errorf("decode vault: %w", err)
	}
	return v, nil
}

// DecodeTreasury parses the treasury account, discriminator included.
func DecodeTreasury(data []byte) (*Treasury, error) {
	t := &Treasury{}
	if err := decodeAnchor(data, t); err != nil {
		return nil, fmt.Errorf("decode treasury: %w", err)
	}
	return t, nil
}

// DecodePriceUpdateV2 parses a posted pyth price account.
func DecodePriceUpdateV2(data []byte) (*PriceUpdateV2, error) {
	p := &PriceUpdateV2{}
	if err := decodeAnchor(data, p); err != nil {
		return nil, fmt.Errorf("decode price update: %w", err)
	}
	return p, nil
}
