package accountcache

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Source performs the actual remote account reads. It is the only component
// in this package that touches the network; timeouts, retries and
// cancellation all belong to the implementation (or the caller's context).
//
// FetchOne returns (nil, nil) for a confirmed-absent account. FetchMany
// returns a slice in the same order as keys, with nil entries for absent
// accounts; a failed batch returns no partial results.
type Source interface {
	FetchOne(ctx context.Context, key solana.PublicKey) (*Account, error)
	FetchMany(ctx context.Context, keys []solana.PublicKey) ([]*Account, error)
}

// RPCSource fetches accounts over a solana RPC endpoint.
type RPCSource struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

func NewRPCSource(rpcClient *rpc.Client) *RPCSource {
	return &RPCSource{rpcClient: rpcClient, commitment: rpc.CommitmentFinalized}
}

func (s *RPCSource) FetchOne(ctx context.Context, key solana.PublicKey) (*Account, error) {
	out, err := s.rpcClient.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{Commitment: s.commitment})
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return accountFromRPC(out.Value), nil
}

func (s *RPCSource) FetchMany(ctx context.Context, keys []solana.PublicKey) ([]*Account, error) {
	out, err := s.rpcClient.GetMultipleAccountsWithOpts(ctx, keys, &rpc.GetMultipleAccountsOpts{
		Commitment: s.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		return nil, err
	}
	accounts := make([]*Account, len(keys))
	for i, acc := range out.Value {
		accounts[i] = accountFromRPC(acc)
	}
	return accounts, nil
}
