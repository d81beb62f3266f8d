package venue

import (
	"github.com/gagliardetto/solana-go"
)

// TokenInfo carries mint-level metadata a venue needs for quoting and ATA
// derivation: decimals, owning token program and any Token-2022 transfer fee.
type TokenInfo struct {
	Mint     solana.PublicKey
	Decimals int32

	// IsToken2022 is true when the mint lives under the Token-2022 program.
	IsToken2022 bool

	// TransferFeeBps is the Token-2022 transfer fee in basis points, nil
	// when the mint has no transfer-fee extension.
	TransferFeeBps *uint16

	// MaximumFee caps the per-transfer fee in atoms, nil without extension.
	MaximumFee *uint64
}

// TokenProgram returns the program that owns this mint.
func (t TokenInfo) TokenProgram() solana.PublicKey {
	if t.IsToken2022 {
		return solana.Token2022ProgramID
	}
	return solana.TokenProgramID
}

// AssociatedTokenAddress derives the wallet's ATA for this mint under the
// correct token program; classic and Token-2022 ATAs do not coincide.
func (t TokenInfo) AssociatedTokenAddress(wallet solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress(
		[][]byte{wallet.Bytes(), t.TokenProgram().Bytes(), t.Mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return ata, err
}
