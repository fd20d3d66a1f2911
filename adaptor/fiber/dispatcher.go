package fiber

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v3"
	"github.com/kcmvp/paramx"
	"github.com/kcmvp/paramx/internal"
	"github.com/kcmvp/paramx/mockmvc"
)

// paramsHeader carries the id the resolved parameters of a request are registered under.
const paramsHeader = "X-Paramx-Dispatch"

// dispatcher runs requests through fiber's App.Test. The request is serialized on the
// way, so it carries an id in paramsHeader and the locals middleware looks the resolved
// parameters up in pending.
type dispatcher struct {
	app     *fiber.App
	seq     atomic.Uint64
	pending sync.Map
}

// NewDispatcher creates a Fiber app whose first middleware exposes the resolved
// parameters to handlers, then lets routes register the handlers.
func NewDispatcher(routes func(app *fiber.App)) mockmvc.Dispatcher {
	d := &dispatcher{app: fiber.New()}
	d.app.Use(fiber.Handler(d.locals))
	routes(d.app)
	return d
}

// StandaloneSetup is NewDispatcher installed as the global mockmvc dispatcher.
func StandaloneSetup(routes func(app *fiber.App)) mockmvc.Dispatcher {
	d := NewDispatcher(routes)
	mockmvc.Setup(d)
	return d
}

func (d *dispatcher) locals(c fiber.Ctx) error {
	if rs, ok := d.pending.Load(c.Get(paramsHeader)); ok {
		c.Locals(internal.ParamsKey, rs)
	}
	return c.Next()
}

func (d *dispatcher) Dispatch(ctx context.Context, req *mockmvc.Request) (*mockmvc.Response, error) {
	hr, err := mockmvc.NewHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	id := strconv.FormatUint(d.seq.Add(1), 10)
	d.pending.Store(id, internal.Params(hr.Context()))
	defer d.pending.Delete(id)
	hr.Header.Set(paramsHeader, id)

	resp, err := d.app.Test(hr)
	if err != nil {
		return nil, fmt.Errorf("fiber: %w", err)
	}
	out := mockmvc.NewResponse(resp)
	mockmvc.Logger().Named("fiber").Debug("dispatched", "method", hr.Method, "uri", hr.RequestURI, "status", out.StatusCode)
	return out, nil
}

// Params retrieves the resolved parameters of a dispatched request from the fiber
// context. It returns nil if the request didn't come through the dispatcher.
func Params(c fiber.Ctx) *paramx.Resolved {
	return internal.Lookup(c.Locals(internal.ParamsKey))
}
