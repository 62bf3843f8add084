package splitter

import (
	"math/big"

	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

// Distribute computes the exact proportional split of the given amount
// over the weighted targets. The returned disbursements are aligned with
// the target list and sum exactly to the amount.
//
// Each target gets floor(units * weight / weightSum) of the amount's
// fractional units. The rounding remainder, which is always smaller than
// the number of targets, is handed out one unit at a time in target list
// order. List order is the canonical on-ledger order, so every node
// assigns the remainder identically.
func Distribute(amount coin.Coin, targets []*TargetWeight) ([]coin.Coin, error) {
	if err := amount.Validate(); err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return nil, errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if err := validateTargets(targets); err != nil {
		return nil, err
	}

	var weightSum int64
	for _, tw := range targets {
		weightSum += int64(tw.Weight)
	}

	// All arithmetic runs on arbitrary precision integers. The total
	// unit count can exceed int64 and a product units*weight certainly
	// can, while float math would break determinism.
	units := coinUnits(amount)
	w := new(big.Int).SetInt64(weightSum)

	shares := make([]*big.Int, len(targets))
	assigned := new(big.Int)
	for i, tw := range targets {
		share := new(big.Int).Mul(units, big.NewInt(int64(tw.Weight)))
		share.Quo(share, w)
		shares[i] = share
		assigned.Add(assigned, share)
	}

	// 0 <= remainder < len(targets)
	remainder := new(big.Int).Sub(units, assigned)
	one := big.NewInt(1)
	for i := 0; remainder.Sign() > 0; i++ {
		shares[i].Add(shares[i], one)
		remainder.Sub(remainder, one)
	}

	res := make([]coin.Coin, len(targets))
	for i, share := range shares {
		res[i] = unitsCoin(share, amount.Ticker)
	}
	return res, nil
}

// coinUnits returns the coin value in fractional units.
func coinUnits(c coin.Coin) *big.Int {
	u := new(big.Int).Mul(big.NewInt(c.Whole), big.NewInt(coin.FracUnit))
	return u.Add(u, big.NewInt(c.Fractional))
}

// unitsCoin converts a non-negative fractional unit count back to a coin.
func unitsCoin(units *big.Int, ticker string) coin.Coin {
	whole, frac := new(big.Int).QuoRem(units, big.NewInt(coin.FracUnit), new(big.Int))
	return coin.NewCoin(whole.Int64(), frac.Int64(), ticker)
}
