package echo

import (
	"github.com/kcmvp/paramx"
	"github.com/kcmvp/paramx/internal"
	"github.com/kcmvp/paramx/mockmvc"
	"github.com/labstack/echo/v4"
)

// Dispatcher dispatches requests to an Echo instance.
func Dispatcher(e *echo.Echo) mockmvc.Dispatcher {
	return mockmvc.HandlerDispatcher(e)
}

// StandaloneSetup creates an Echo instance, lets routes register handlers on it and
// installs it as the global mockmvc dispatcher.
func StandaloneSetup(routes func(e *echo.Echo)) mockmvc.Dispatcher {
	e := echo.New()
	e.HideBanner = true
	routes(e)
	d := Dispatcher(e)
	mockmvc.Setup(d)
	return d
}

// Params retrieves the resolved parameters of a dispatched request from the echo context.
// It returns nil if the request didn't come through a mockmvc dispatcher.
func Params(c echo.Context) *paramx.Resolved {
	return internal.Params(c.Request().Context())
}
