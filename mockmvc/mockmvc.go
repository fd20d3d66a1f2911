// Package mockmvc builds requests from accumulated parameters and dispatches them to an
// in-process server. Parameter handling is delegated to paramx; this package owns the
// transport side: path expansion, query string and form body encoding.
package mockmvc

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/kcmvp/paramx"
	"github.com/kcmvp/paramx/internal"
)

var (
	ErrNoDispatcher        = errors.New("no dispatcher configured")
	ErrUnresolvedPathParam = internal.ErrUnresolvedPathParam
)

var (
	mu         sync.RWMutex
	dispatcher Dispatcher
	log        hclog.Logger = hclog.NewNullLogger()
)

// Setup installs the dispatcher used by every RequestSpec that has none of its own.
func Setup(d Dispatcher) {
	mu.Lock()
	defer mu.Unlock()
	dispatcher = d
}

// SetConfig replaces the process-wide default parameter configuration.
func SetConfig(cfg paramx.ParamConfig) {
	paramx.SetDefaultConfig(cfg)
}

// SetLogger enables dispatch logging. A nil logger disables it.
func SetLogger(l hclog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = hclog.NewNullLogger()
	}
	log = l.Named("mockmvc")
}

// Logger returns the logger set with SetLogger.
func Logger() hclog.Logger {
	return logger()
}

// Reset removes the global dispatcher and restores the built-in parameter configuration.
func Reset() {
	Setup(nil)
	paramx.ResetDefaultConfig()
}

func current() Dispatcher {
	mu.RLock()
	defer mu.RUnlock()
	return dispatcher
}

func logger() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}
