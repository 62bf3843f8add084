package coin

import (
	"strings"

	"github.com/iov-one/paysplit/errors"
)

// Coins is a set of coins, one per ticker, kept sorted by ticker so that
// the serialized form is deterministic.
type Coins []*Coin

// Clone returns an independent copy of the whole set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with given coin value merged in. A zero result
// for a ticker removes that coin from the set. A negative result is an
// error, this type models a balance, not a debt.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.Ticker == "" && c.IsZero() {
		return cs.Clone(), nil
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid coin")
	}

	res := make(Coins, 0, len(cs)+1)
	merged := false
	for _, have := range cs {
		switch {
		case have.Ticker == c.Ticker:
			sum, err := have.Add(c)
			if err != nil {
				return nil, err
			}
			if !sum.IsNonNegative() {
				return nil, errors.Wrapf(errors.ErrAmount, "negative %s balance", c.Ticker)
			}
			if !sum.IsZero() {
				res = append(res, &sum)
			}
			merged = true
		case !merged && strings.Compare(have.Ticker, c.Ticker) > 0:
			if !c.IsNonNegative() {
				return nil, errors.Wrapf(errors.ErrAmount, "negative %s balance", c.Ticker)
			}
			if !c.IsZero() {
				res = append(res, c.Clone())
			}
			merged = true
			res = append(res, have.Clone())
		default:
			res = append(res, have.Clone())
		}
	}
	if !merged {
		if !c.IsNonNegative() {
			return nil, errors.Wrapf(errors.ErrAmount, "negative %s balance", c.Ticker)
		}
		if !c.IsZero() {
			res = append(res, c.Clone())
		}
	}
	return res, nil
}

// Subtract returns a new set with given coin value removed. It fails if
// the result for that ticker would be negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if the set holds at least the given amount of
// that ticker.
func (cs Coins) Contains(c Coin) bool {
	for _, have := range cs {
		if have.Ticker == c.Ticker {
			return have.IsGTE(c)
		}
	}
	return c.IsZero()
}

// Amount returns the amount held for given ticker. A ticker that is not
// present in the set is reported as a zero value coin.
func (cs Coins) Amount(ticker string) Coin {
	for _, have := range cs {
		if have.Ticker == ticker {
			return *have
		}
	}
	return Coin{Ticker: ticker}
}

// Equals returns true if both sets hold exactly the same values.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires a sorted set of valid, positive coins with unique
// tickers.
func (cs Coins) Validate() error {
	last := ""
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrEmpty, "coin %d", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "coin %d is not positive", i)
		}
		if strings.Compare(last, c.Ticker) >= 0 {
			return errors.Wrapf(errors.ErrState, "coin %d out of order", i)
		}
		last = c.Ticker
	}
	return nil
}
