package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/kcmvp/paramx"
	"github.com/kcmvp/paramx/internal"
	"github.com/kcmvp/paramx/mockmvc"
)

// Dispatcher dispatches requests to a Gin engine. Path templates keep the {name} syntax
// even though the engine registers the route as :name.
func Dispatcher(engine *gin.Engine) mockmvc.Dispatcher {
	return mockmvc.HandlerDispatcher(engine)
}

// StandaloneSetup creates a Gin engine in test mode, lets routes register handlers on it
// and installs it as the global mockmvc dispatcher.
func StandaloneSetup(routes func(engine *gin.Engine)) mockmvc.Dispatcher {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	routes(engine)
	d := Dispatcher(engine)
	mockmvc.Setup(d)
	return d
}

// Params retrieves the resolved parameters of a dispatched request from the gin context.
// It returns nil if the request didn't come through a mockmvc dispatcher.
func Params(c *gin.Context) *paramx.Resolved {
	return internal.Params(c.Request.Context())
}
