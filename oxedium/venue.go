// Package oxedium implements the oracle-priced oxedium AMM as a routable
// trading venue. The venue prices swaps off two pyth feeds, one per vault,
// with a flat treasury fee; there is no curve, only inventory limits.
package oxedium

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

// swapDiscriminator is the anchor instruction discriminator for swap.
var swapDiscriminator = [8]byte{248, 198, 158, 145, 225, 117, 135, 200}

var ErrOracleNotFound = errors.New("oracle not found for mint")

// MintOracle pairs a tradable mint with the pyth feed that prices it.
type MintOracle struct {
	Mint   solana.PublicKey
	Oracle solana.PublicKey
}

// DefaultMintOracles covers the canonical SOL/USDC deployment.
var DefaultMintOracles = []MintOracle{
	{
		Mint:   solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112"),
		Oracle: solana.MustPublicKeyFromBase58("7UVimffxr9ow1uXYxsr4LHAcV58mLzhmwaeKvJ1pjLiE"),
	},
	{
		Mint:   solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
		Oracle: solana.MustPublicKeyFromBase58("Dpw1EAVrSB1ibxiDQyTAW6Zip3J4Btk2x4SgApQCeFbX"),
	},
}

// Venue is the oxedium implementation of venue.TradingVenue. It starts
// uninitialized; UpdateState loads vaults, mints, oracles and the treasury
// through the shared cache and only then permits quoting.
type Venue struct {
	market solana.PublicKey
	pairs  []MintOracle
	logger *zap.Logger

	initialized bool
	vaults      map[solana.PublicKey]*Vault         // keyed by mint
	mints       map[solana.PublicKey]*spltoken.Mint // keyed by mint
	oracles     map[solana.PublicKey]*PriceUpdateV2 // keyed by oracle account
	treasury    *Treasury
	tokenInfos  []venue.TokenInfo
}

// New constructs an uninitialized venue for the given market. A nil logger
// disables diagnostics. pairs defaults to DefaultMintOracles when empty.
func New(market solana.PublicKey, pairs []MintOracle, logger *zap.Logger) *Venue {
	if len(pairs) == 0 {
		pairs = DefaultMintOracles
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Venue{
		market: market,
		pairs:  pairs,
		logger: logger,
	}
}

func (v *Venue) Initialized() bool { return v.initialized }

func (v *Venue) ProgramID() solana.PublicKey { return ProgramID }

func (v *Venue) MarketID() solana.PublicKey { return v.market }

func (v *Venue) Protocol() venue.Protocol { return venue.ProtocolOxedium }

func (v *Venue) TokenInfos() []venue.TokenInfo { return v.tokenInfos }

func (v *Venue) oracleForMint(mint solana.PublicKey) (solana.PublicKey, bool) {
	for _, pair := range v.pairs {
		if pair.Mint.Equals(mint) {
			return pair.Oracle, true
		}
	}
	return solana.PublicKey{}, false
}

// RequiredAccounts derives the full refresh set from static configuration:
// per pair its vault PDA, mint and oracle, plus the treasury.
func (v *Venue) RequiredAccounts() ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, len(v.pairs)*3+1)
	for _, pair := range v.pairs {
		vaultPDA, err := DeriveVaultPDA(pair.Mint)
		if err != nil {
			return nil, err
		}
		keys = append(keys, vaultPDA, pair.Mint, pair.Oracle)
	}
	treasuryPDA, err := DeriveTreasuryPDA()
	if err != nil {
		return nil, err
	}
	keys = append(keys, treasuryPDA)
	return keys, nil
}

// UpdateState resolves every required account and deserializes venue state.
// It commits nothing on failure: a missing or unparsable account leaves the
// venue exactly as it was, uninitialized or serving its previous snapshot.
func (v *Venue) UpdateState(ctx context.Context, cache venue.AccountsCache) error {
	keys, err := v.RequiredAccounts()
	if err != nil {
		return err
	}
	accounts, err := cache.GetAccounts(ctx, keys)
	if err != nil {
		return err
	}

	vaults := make(map[solana.PublicKey]*Vault, len(v.pairs))
	mints := make(map[solana.PublicKey]*spltoken.Mint, len(v.pairs))
	oracles := make(map[solana.PublicKey]*PriceUpdateV2, len(v.pairs))
	tokenInfos := make([]venue.TokenInfo, 0, len(v.pairs))

	for i, pair := range v.pairs {
		vaultAcc, mintAcc, oracleAcc := accounts[i*3], accounts[i*3+1], accounts[i*3+2]

		if vaultAcc == nil {
			return &venue.StateError{Key: keys[i*3], Field: "vault"}
		}
		vault, err := DecodeVault(vaultAcc.Data)
		if err != nil {
			return &venue.StateError{Key: keys[i*3], Field: "vault", Err: err}
		}
		vaults[pair.Mint] = vault

		if mintAcc == nil {
			return &venue.StateError{Key: pair.Mint, Field: "mint"}
		}
		mint, err := spltoken.DecodeMint(mintAcc.Data, mintAcc.Owner)
		if err != nil {
			return &venue.StateError{Key: pair.Mint, Field: "mint", Err: err}
		}
		mints[pair.Mint] = mint

		if oracleAcc == nil {
			return &venue.StateError{Key: pair.Oracle, Field: "oracle"}
		}
		price, err := DecodePriceUpdateV2(oracleAcc.Data)
		if err != nil {
			return &venue.StateError{Key: pair.Oracle, Field: "oracle", Err: err}
		}
		oracles[pair.Oracle] = price

		tokenInfos = append(tokenInfos, venue.TokenInfo{
			Mint:        pair.Mint,
			Decimals:    int32(mint.Decimals),
			IsToken2022: mint.IsToken2022(),
		})
	}

	treasuryKey := keys[len(keys)-1]
	treasuryAcc := accounts[len(accounts)-1]
	if treasuryAcc == nil {
		return &venue.StateError{Key: treasuryKey, Field: "treasury"}
	}
	treasury, err := DecodeTreasury(treasuryAcc.Data)
	if err != nil {
		return &venue.StateError{Key: treasuryKey, Field: "treasury", Err: err}
	}

	v.vaults = vaults
	v.mints = mints
	v.oracles = oracles
	v.treasury = treasury
	v.tokenInfos = tokenInfos
	v.initialized = true

	v.logger.Debug("venue state updated",
		zap.Stringer("market", v.market),
		zap.Int("vaults", len(vaults)),
	)
	return nil
}

// Quote prices request.Amount of the input asset against the two oracle
// feeds. It is pure; boundary scanning calls it repeatedly.
func (v *Venue) Quote(request venue.QuoteRequest) (venue.QuoteResult, error) {
	if !v.initialized {
		return venue.QuoteResult{}, venue.ErrNotInitialized
	}
	if request.SwapType == venue.ExactOut {
		return venue.QuoteResult{}, venue.ErrExactOutNotSupported
	}
	if v.treasury.Stoptap {
		return venue.QuoteResult{}, venue.ErrInactive
	}

	vaultIn, ok := v.vaults[request.InputMint]
	if !ok {
		return venue.QuoteResult{}, &venue.InvalidMintError{Mint: request.InputMint}
	}
	vaultOut, ok := v.vaults[request.OutputMint]
	if !ok {
		return venue.QuoteResult{}, &venue.InvalidMintError{Mint: request.OutputMint}
	}

	mintIn := v.mints[request.InputMint]
	mintOut := v.mints[request.OutputMint]

	priceIn, ok := v.oracles[vaultIn.PythPriceAccount]
	if !ok {
		return venue.QuoteResult{}, &venue.StateError{Key: vaultIn.PythPriceAccount, Field: "oracle"}
	}
	priceOut, ok := v.oracles[vaultOut.PythPriceAccount]
	if !ok {
		return venue.QuoteResult{}, &venue.StateError{Key: vaultOut.PythPriceAccount, Field: "oracle"}
	}

	result, err := computeSwapMath(
		request.Amount,
		&priceIn.PriceMessage,
		&priceOut.PriceMessage,
		int32(mintIn.Decimals),
		int32(mintOut.Decimals),
		v.treasury.FeeBps,
	)
	if err != nil {
		return venue.QuoteResult{}, err
	}

	return venue.QuoteResult{
		InputMint:          request.InputMint,
		OutputMint:         request.OutputMint,
		Amount:             request.Amount,
		ExpectedOutput:     result.netAmountOut,
		NotEnoughLiquidity: result.netAmountOut > vaultOut.CurrentLiquidity,
	}, nil
}

func (v *Venue) Bounds(tokenInIdx, tokenOutIdx uint8) (uint64, uint64, error) {
	return bounds.ForVenue(v, tokenInIdx, tokenOutIdx)
}

// BuildSwapInstruction assembles the on-chain swap call. Amounts come from
// the request, never from a quote result.
func (v *Venue) BuildSwapInstruction(request venue.QuoteRequest, user solana.PublicKey) (solana.Instruction, error) {
	if request.SwapType == venue.ExactOut {
		return nil, venue.ErrExactOutNotSupported
	}

	oracleIn, ok := v.oracleForMint(request.InputMint)
	if !ok {
		return nil, ErrOracleNotFound
	}
	oracleOut, ok := v.oracleForMint(request.OutputMint)
	if !ok {
		return nil, ErrOracleNotFound
	}

	vaultIn, err := DeriveVaultPDA(request.InputMint)
	if err != nil {
		return nil, err
	}
	vaultOut, err := DeriveVaultPDA(request.OutputMint)
	if err != nil {
		return nil, err
	}
	treasuryPDA, err := DeriveTreasuryPDA()
	if err != nil {
		return nil, err
	}

	userInATA, _, err := solana.FindAssociatedTokenAddress(user, request.InputMint)
	if err != nil {
		return nil, err
	}
	userOutATA, _, err := solana.FindAssociatedTokenAddress(user, request.OutputMint)
	if err != nil {
		return nil, err
	}
	treasuryInATA, _, err := solana.FindAssociatedTokenAddress(treasuryPDA, request.InputMint)
	if err != nil {
		return nil, err
	}
	treasuryOutATA, _, err := solana.FindAssociatedTokenAddress(treasuryPDA, request.OutputMint)
	if err != nil {
		return nil, err
	}

	data := new(bytes.Buffer)
	data.Write(swapDiscriminator[:])
	if err := binary.NewBorshEncoder(data).Encode(SwapIxData{
		AmountIn:     request.Amount,
		MinAmountOut: 1,
	}); err != nil {
		return nil, err
	}

	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(request.InputMint, false, false),
		solana.NewAccountMeta(request.OutputMint, false, false),
		solana.NewAccountMeta(oracleIn, false, false),
		solana.NewAccountMeta(oracleOut, false, false),
		solana.NewAccountMeta(userInATA, true, false),
		solana.NewAccountMeta(userOutATA, true, false),
		solana.NewAccountMeta(vaultIn, true, false),
		solana.NewAccountMeta(vaultOut, true, false),
		solana.NewAccountMeta(treasuryPDA, true, false),
		solana.NewAccountMeta(treasuryInATA, true, false),
		solana.NewAccountMeta(treasuryOutATA, true, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}

	return solana.NewInstruction(ProgramID, metas, data.Bytes()), nil
}
