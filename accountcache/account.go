package accountcache

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Account is a point-in-time copy of an on-chain account. Venues treat the
// Data bytes as opaque and deserialize them with their own layouts.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

func accountFromRPC(acc *rpc.Account) *Account {
	if acc == nil {
		return nil
	}
	out := &Account{
		Lamports:   acc.Lamports,
		Owner:      acc.Owner,
		Executable: acc.Executable,
	}
	if acc.Data != nil {
		out.Data = acc.Data.GetBinary()
	}
	return out
}
