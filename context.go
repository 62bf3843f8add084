package paysplit

import (
	"context"
	"regexp"

	"github.com/iov-one/paysplit/errors"
)

// Context is just an alias for the standard implementation. We use this
// to allow better overrides in the future.
type Context = context.Context

// IsValidChainID is the RegExp to ensure valid chain IDs.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
)

// WithHeight sets the block height for the Context.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. The ok result is false if
// no height was set on this context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context. Panics on invalid ID.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id: %v", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id stored in the context, or an empty
// string if none was set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}
