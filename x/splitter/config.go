package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/gconf"
)

// configName is the gconf namespace of this extension.
const configName = "splitter"

// Validate implements the gconf requirements.
func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.CollectorAddress.Validate(); err != nil {
		return errors.Wrap(err, "collector address")
	}
	fees := []struct {
		name string
		fee  coin.Coin
	}{
		{"create fee", c.CreateFee},
		{"update fee", c.UpdateFee},
		{"price per kbyte", c.PricePerKbyte},
		{"pay fee", c.PayFee},
		{"payout fee", c.PayoutFee},
		{"delete fee", c.DeleteFee},
	}
	for _, f := range fees {
		if err := f.fee.Validate(); err != nil {
			return errors.Wrap(err, f.name)
		}
		if !f.fee.IsNonNegative() {
			return errors.Wrapf(errors.ErrAmount, "%s cannot be negative", f.name)
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configName, &conf); err != nil {
		return conf, errors.Wrap(err, "cannot load configuration")
	}
	return conf, nil
}

// dataFee returns the required fee of a size dependent operation: the
// base fee plus the per kilobyte rate for every started kilobyte of the
// serialized message.
func dataFee(base, perKbyte coin.Coin, msg paysplit.Marshaller) (coin.Coin, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "cannot serialize message")
	}
	kbytes := (int64(len(raw)) + 1023) / 1024
	sized, err := perKbyte.Multiply(kbytes)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "size fee")
	}
	total, err := base.Add(sized)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "total fee")
	}
	return total, nil
}

// payoutFee returns the fixed payout fee denominated in the asset of the
// splitter it is charged from. The configured value fixes the numeric
// amount, the splitter balance fixes the asset.
func payoutFee(conf Configuration, ticker string) coin.Coin {
	fee := conf.PayoutFee
	fee.Ticker = ticker
	return fee
}
