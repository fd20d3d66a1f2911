package paramx

import (
	"sync"

	"github.com/samber/mo"
)

// ParamConfig holds the update strategies a caller explicitly asked for. It is a value
// object: every setter works on a copy and returns it, so a shared configuration is never
// changed in place.
//
// Inside one ParamConfig a per-category setting always beats the blanket
// ReplaceAllParameters / MergeAllParameters shortcut, whichever was called last.
type ParamConfig struct {
	request mo.Option[UpdateStrategy]
	query   mo.Option[UpdateStrategy]
	form    mo.Option[UpdateStrategy]
	all     mo.Option[UpdateStrategy]
}

// NewParamConfig returns a configuration with nothing set, which resolves to the
// built-in defaults.
func NewParamConfig() ParamConfig {
	return ParamConfig{
		request: mo.None[UpdateStrategy](),
		query:   mo.None[UpdateStrategy](),
		form:    mo.None[UpdateStrategy](),
		all:     mo.None[UpdateStrategy](),
	}
}

// RequestParamsUpdateStrategy sets the strategy of generic request parameters.
func (c ParamConfig) RequestParamsUpdateStrategy(s UpdateStrategy) ParamConfig {
	c.request = mo.Some(s)
	return c
}

// QueryParamsUpdateStrategy sets the strategy of query parameters.
func (c ParamConfig) QueryParamsUpdateStrategy(s UpdateStrategy) ParamConfig {
	c.query = mo.Some(s)
	return c
}

// FormParamsUpdateStrategy sets the strategy of form parameters.
func (c ParamConfig) FormParamsUpdateStrategy(s UpdateStrategy) ParamConfig {
	c.form = mo.Some(s)
	return c
}

// ReplaceAllParameters makes every configurable category use Replace unless the category
// has its own setting.
func (c ParamConfig) ReplaceAllParameters() ParamConfig {
	c.all = mo.Some(Replace)
	return c
}

// MergeAllParameters makes every configurable category use Merge unless the category
// has its own setting.
func (c ParamConfig) MergeAllParameters() ParamConfig {
	c.all = mo.Some(Merge)
	return c
}

// Lookup returns the strategy this configuration explicitly defines for the category,
// or None when it leaves the decision to a lower layer. Path is never configurable and
// always yields Replace.
func (c ParamConfig) Lookup(category Category) mo.Option[UpdateStrategy] {
	var own mo.Option[UpdateStrategy]
	switch category {
	case Path:
		return mo.Some(Replace)
	case Request:
		own = c.request
	case Query:
		own = c.query
	case Form:
		own = c.form
	default:
		return mo.None[UpdateStrategy]()
	}
	if own.IsPresent() {
		return own
	}
	return c.all
}

// UpdateStrategy returns the strategy of the category with the built-in default applied.
func (c ParamConfig) UpdateStrategy(category Category) UpdateStrategy {
	return c.Lookup(category).OrElse(builtin(category))
}

// IsUserConfigured reports whether anything was set explicitly.
func (c ParamConfig) IsUserConfigured() bool {
	return c.request.IsPresent() || c.query.IsPresent() || c.form.IsPresent() || c.all.IsPresent()
}

func builtin(category Category) UpdateStrategy {
	if category == Path {
		return Replace
	}
	return Merge
}

// Policy is the resolved strategy of every category at dispatch time.
type Policy struct {
	strategies [4]UpdateStrategy
}

// Effective collapses configuration layers into a Policy. Layers are given highest
// precedence first, typically the per-request configuration followed by the process-wide
// default. The first layer that defines a category decides it; categories no layer
// defines fall back to the built-in default.
func Effective(layers ...ParamConfig) Policy {
	var p Policy
	for _, category := range Categories {
		p.strategies[category] = builtin(category)
		for _, layer := range layers {
			if s, ok := layer.Lookup(category).Get(); ok {
				p.strategies[category] = s
				break
			}
		}
	}
	return p
}

// Strategy returns the strategy of the category. Unknown categories get the built-in one.
func (p Policy) Strategy(category Category) UpdateStrategy {
	if category == Path {
		return Replace
	}
	if category < 0 || int(category) >= len(p.strategies) {
		return builtin(category)
	}
	return p.strategies[category]
}

var (
	defaultMu     sync.RWMutex
	defaultConfig = NewParamConfig()
)

// DefaultConfig returns a snapshot of the process-wide default configuration.
func DefaultConfig() ParamConfig {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig
}

// SetDefaultConfig replaces the process-wide default configuration.
func SetDefaultConfig(cfg ParamConfig) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultConfig = cfg
}

// ResetDefaultConfig restores the built-in defaults.
func ResetDefaultConfig() {
	SetDefaultConfig(NewParamConfig())
}
