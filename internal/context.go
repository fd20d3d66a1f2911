package internal

import (
	"context"

	"github.com/kcmvp/paramx"
)

// A private type to prevent key collisions in context.
type paramsKeyType struct{}

// ParamsKey is the key used to store the resolved parameters in the request context.
var ParamsKey = paramsKeyType{}

// WithParams returns a copy of ctx carrying the resolved parameters.
func WithParams(ctx context.Context, params *paramx.Resolved) context.Context {
	return context.WithValue(ctx, ParamsKey, params)
}

// Params retrieves the resolved parameters from ctx, or nil.
func Params(ctx context.Context) *paramx.Resolved {
	return Lookup(ctx.Value(ParamsKey))
}

// Lookup asserts a stored value to the resolved parameters. It accepts anything a
// framework hands back from its own storage (fiber locals, for instance).
func Lookup(val any) *paramx.Resolved {
	if rs, ok := val.(*paramx.Resolved); ok {
		return rs
	}
	return nil
}
