// Package cpamm implements a constant-product AMM pool as a routable
// trading venue. Pool reserves come from the two SPL vault accounts and
// pricing is the classic x*y=k curve with a fee taken on input.
package cpamm

import (
	"bytes"
	"context"
	"errors"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/titanswap/titan-go/spltoken"
	"github.com/titanswap/titan-go/venue"
	"github.com/titanswap/titan-go/venue/bounds"
)

// ProgramID is the constant-product AMM program address.
var ProgramID = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")

const authoritySeed = "amm authority"

// swapBaseInTag is the instruction tag for an exact-in swap.
const swapBaseInTag = uint8(9)

var ErrPoolDisabled = errors.New("pool is not enabled for trading")

// Venue is a single constant-product pool. It is constructed from the pool
// account itself, which carries every other key the venue needs.
type Venue struct {
	poolKey solana.PublicKey
	logger  *zap.Logger

	initialized  bool
	pool         *Pool
	baseBalance  uint64
	quoteBalance uint64
	tokenInfos   []venue.TokenInfo
}

// New constructs an uninitialized venue for the pool at poolKey. The pool
// layout is first read during UpdateState.
func New(poolKey solana.PublicKey, logger *zap.Logger) *Venue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Venue{poolKey: poolKey, logger: logger}
}

func (v *Venue) Initialized() bool { return v.initialized }

func (v *Venue) ProgramID() solana.PublicKey { return ProgramID }

func (v *Venue) MarketID() solana.PublicKey { return v.poolKey }

func (v *Venue) Protocol() venue.Protocol { return venue.ProtocolCPAMM }

func (v *Venue) TokenInfos() []venue.TokenInfo { return v.tokenInfos }

// RequiredAccounts starts from the pool account alone; vault and mint keys
// are read out of the pool layout during refresh, so one batched fetch per
// refresh still suffices once the pool is known.
func (v *Venue) RequiredAccounts() ([]solana.PublicKey, error) {
	if v.pool == nil {
		return []solana.PublicKey{v.poolKey}, nil
	}
	return []solana.PublicKey{
		v.poolKey,
		v.pool.BaseVault,
		v.pool.QuoteVault,
		v.pool.BaseMint,
		v.pool.QuoteMint,
	}, nil
}

// UpdateState loads the pool, its vault balances and mint metadata. Nothing
// commits unless every account decoded; a failed refresh leaves prior state
// untouched.
func (v *Venue) UpdateState(ctx context.Context, cache venue.AccountsCache) error {
	poolAcc, err := cache.GetAccount(ctx, v.poolKey)
	if err != nil {
		return err
	}
	if poolAcc == nil {
		return &venue.StateError{Key: v.poolKey, Field: "pool"}
	}
	pool, err := DecodePool(poolAcc.Data)
	if err != nil {
		return &venue.StateError{Key: v.poolKey, Field: "pool", Err: err}
	}

	keys := []solana.PublicKey{pool.BaseVault, pool.QuoteVault, pool.BaseMint, pool.QuoteMint}
	accounts, err := cache.GetAccounts(ctx, keys)
	if err != nil {
		return err
	}

	var vaults [2]*spltoken.TokenAccount
	for i := 0; i < 2; i++ {
		if accounts[i] == nil {
			return &venue.StateError{Key: keys[i], Field: "vault"}
		}
		vault, err := spltoken.DecodeTokenAccount(accounts[i].Data)
		if err != nil {
			return &venue.StateError{Key: keys[i], Field: "vault", Err: err}
		}
		vaults[i] = vault
	}

	var mints [2]*spltoken.Mint
	for i := 0; i < 2; i++ {
		acc := accounts[i+2]
		if acc == nil {
			return &venue.StateError{Key: keys[i+2], Field: "mint"}
		}
		mint, err := spltoken.DecodeMint(acc.Data, acc.Owner)
		if err != nil {
			return &venue.StateError{Key: keys[i+2], Field: "mint", Err: err}
		}
		mints[i] = mint
	}

	v.pool = pool
	v.baseBalance = vaults[0].Amount
	v.quoteBalance = vaults[1].Amount
	v.tokenInfos = []venue.TokenInfo{
		{Mint: pool.BaseMint, Decimals: int32(mints[0].Decimals), IsToken2022: mints[0].IsToken2022()},
		{Mint: pool.QuoteMint, Decimals: int32(mints[1].Decimals), IsToken2022: mints[1].IsToken2022()},
	}
	v.initialized = true

	v.logger.Debug("pool state updated",
		zap.Stringer("pool", v.poolKey),
		zap.Uint64("baseBalance", v.baseBalance),
		zap.Uint64("quoteBalance", v.quoteBalance),
	)
	return nil
}

// Quote computes the exact-in constant-product outcome from loaded reserves.
func (v *Venue) Quote(request venue.QuoteRequest) (venue.QuoteResult, error) {
	if !v.initialized {
		return venue.QuoteResult{}, venue.ErrNotInitialized
	}
	if request.SwapType == venue.ExactOut {
		return venue.QuoteResult{}, venue.ErrExactOutNotSupported
	}
	if !v.pool.TradingEnabled() {
		return venue.QuoteResult{}, ErrPoolDisabled
	}

	var reserveIn, reserveOut uint64
	switch {
	case request.InputMint.Equals(v.pool.BaseMint) && request.OutputMint.Equals(v.pool.QuoteMint):
		reserveIn, reserveOut = v.baseBalance, v.quoteBalance
	case request.InputMint.Equals(v.pool.QuoteMint) && request.OutputMint.Equals(v.pool.BaseMint):
		reserveIn, reserveOut = v.quoteBalance, v.baseBalance
	case request.InputMint.Equals(v.pool.BaseMint) || request.InputMint.Equals(v.pool.QuoteMint):
		return venue.QuoteResult{}, &venue.InvalidMintError{Mint: request.OutputMint}
	default:
		return venue.QuoteResult{}, &venue.InvalidMintError{Mint: request.InputMint}
	}

	out, err := swapBaseIn(
		request.Amount,
		reserveIn,
		reserveOut,
		v.pool.SwapFeeNumerator,
		v.pool.SwapFeeDenominator,
	)
	if err != nil {
		if errors.Is(err, ErrAmountTooLarge) {
			// The pool cannot absorb this input; a low-liquidity result
			// keeps boundary probes erroring-free at the top of the domain.
			return venue.QuoteResult{
				InputMint:          request.InputMint,
				OutputMint:         request.OutputMint,
				Amount:             request.Amount,
				NotEnoughLiquidity: true,
			}, nil
		}
		return venue.QuoteResult{}, err
	}

	return venue.QuoteResult{
		InputMint:          request.InputMint,
		OutputMint:         request.OutputMint,
		Amount:             request.Amount,
		ExpectedOutput:     out,
		NotEnoughLiquidity: out >= reserveOut,
	}, nil
}

func (v *Venue) Bounds(tokenInIdx, tokenOutIdx uint8) (uint64, uint64, error) {
	return bounds.ForVenue(v, tokenInIdx, tokenOutIdx)
}

// BuildSwapInstruction assembles the exact-in swap call from the request
// amounts. minAmountOut is left at 1; the router applies slippage bounds
// before submission.
func (v *Venue) BuildSwapInstruction(request venue.QuoteRequest, user solana.PublicKey) (solana.Instruction, error) {
	if !v.initialized {
		return nil, venue.ErrNotInitialized
	}
	if request.SwapType == venue.ExactOut {
		return nil, venue.ErrExactOutNotSupported
	}

	authority, err := v.pool.Authority()
	if err != nil {
		return nil, err
	}
	userSource, _, err := solana.FindAssociatedTokenAddress(user, request.InputMint)
	if err != nil {
		return nil, err
	}
	userDestination, _, err := solana.FindAssociatedTokenAddress(user, request.OutputMint)
	if err != nil {
		return nil, err
	}

	data := new(bytes.Buffer)
	if err := binary.NewBinEncoder(data).Encode(struct {
		Tag          uint8
		AmountIn     uint64
		MinAmountOut uint64
	}{
		Tag:          swapBaseInTag,
		AmountIn:     request.Amount,
		MinAmountOut: 1,
	}); err != nil {
		return nil, err
	}

	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(v.poolKey, true, false),
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(v.pool.BaseVault, true, false),
		solana.NewAccountMeta(v.pool.QuoteVault, true, false),
		solana.NewAccountMeta(userSource, true, false),
		solana.NewAccountMeta(userDestination, true, false),
		solana.NewAccountMeta(user, true, true),
	}

	return solana.NewInstruction(ProgramID, metas, data.Bytes()), nil
}
