package splitter

import (
	"github.com/iov-one/paysplit/errors"
)

var (
	// ErrInvalidWeight is returned when a target weight is zero, negative
	// or too big.
	ErrInvalidWeight = errors.Register(1200, "invalid target weight")

	// ErrInvalidBounds is returned when the payment bounds are not
	// positive or ordered.
	ErrInvalidBounds = errors.Register(1201, "invalid payment bounds")

	// ErrInvalidThreshold is returned when the payout threshold is
	// negative.
	ErrInvalidThreshold = errors.Register(1202, "invalid payout threshold")

	// ErrBuybackPrice is returned when a market buyback target carries a
	// malformed limit price or the quote asset does not match the asset
	// to buy.
	ErrBuybackPrice = errors.Register(1203, "inconsistent buyback price")

	// ErrPaymentOutOfBounds is returned when a payment is below the
	// minimum or above the maximum accepted by the splitter.
	ErrPaymentOutOfBounds = errors.Register(1204, "payment out of bounds")

	// ErrInsufficientBalance is returned when the splitter balance cannot
	// cover the payout fee.
	ErrInsufficientBalance = errors.Register(1205, "insufficient balance for fee")

	// ErrAssetMismatch is returned when an amount is denominated in a
	// different asset than the splitter balance.
	ErrAssetMismatch = errors.Register(1206, "asset mismatch")
)
