package oxedium

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/titanswap/titan-go/safemath"
)

var (
	ErrNonPositivePrice = errors.New("oracle price is not positive")
	ErrInvalidFee       = errors.New("treasury fee exceeds 100%")
)

type swapMathResult struct {
	grossAmountOut uint64
	feeAmount      uint64
	netAmountOut   uint64
}

// computeSwapMath prices amountIn of the input asset in the output asset via
// the two oracle feeds, scales for mint decimals and deducts the treasury
// fee. All intermediates stay in decimal; the final conversion back to
// uint64 is checked.
func computeSwapMath(
	amountIn uint64,
	priceIn *PriceFeedMessage,
	priceOut *PriceFeedMessage,
	decimalsIn int32,
	decimalsOut int32,
	feeBps uint64,
) (*swapMathResult, error) {
	if priceIn.Price <= 0 || priceOut.Price <= 0 {
		return nil, ErrNonPositivePrice
	}
	if feeBps > safemath.BpsDenominator {
		return nil, ErrInvalidFee
	}

	in := decimal.New(priceIn.Price, priceIn.Exponent)
	out := decimal.New(priceOut.Price, priceOut.Exponent)

	// amountOut = amountIn * (priceIn / priceOut) * 10^(decOut - decIn)
	gross := decimal.NewFromUint64(amountIn).
		Mul(in).
		Div(out).
		Mul(decimal.New(1, decimalsOut-decimalsIn)).
		Truncate(0)

	grossOut, err := safemath.U64FromBig(gross.BigInt())
	if err != nil {
		return nil, err
	}

	fee, err := safemath.MulDivCeilU64(grossOut, feeBps, safemath.BpsDenominator)
	if err != nil {
		return nil, err
	}
	net, err := safemath.SubU64(grossOut, fee)
	if err != nil {
		return nil, err
	}

	return &swapMathResult{
		grossAmountOut: grossOut,
		feeAmount:      fee,
		netAmountOut:   net,
	}, nil
}
