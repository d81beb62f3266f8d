package oxedium

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the oxedium AMM program address.
var ProgramID = solana.MustPublicKeyFromBase58("oxe1SKL52HMLBDT2JQvdxscA1LbVc4EEwwSdNZcnDVH")

const (
	programSeed  = "oxedium"
	treasurySeed = "treasury"
	vaultSeed    = "vault"
)

// DeriveVaultPDA derives the per-mint vault address.
func DeriveVaultPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(vaultSeed), mint.Bytes()},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveTreasuryPDA derives the program-wide treasury address.
func DeriveTreasuryPDA() (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(programSeed), []byte(treasurySeed)},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
