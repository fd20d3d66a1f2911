package mockmvc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kcmvp/paramx"
	"github.com/samber/mo"
)

// RequestSpec collects the parameters of one request and sends it. It is meant to be
// built and sent by a single goroutine.
type RequestSpec struct {
	params     *paramx.Accumulator
	config     mo.Option[paramx.ParamConfig]
	dispatcher mo.Option[Dispatcher]
}

// Given starts a new request specification.
func Given() *RequestSpec {
	return &RequestSpec{
		params:     paramx.NewAccumulator(),
		config:     mo.None[paramx.ParamConfig](),
		dispatcher: mo.None[Dispatcher](),
	}
}

// Config sets the parameter configuration of this request only. It takes precedence
// over the process-wide default.
func (s *RequestSpec) Config(cfg paramx.ParamConfig) *RequestSpec {
	s.config = mo.Some(cfg)
	return s
}

// Dispatcher sends this request with d instead of the global dispatcher.
func (s *RequestSpec) Dispatcher(d Dispatcher) *RequestSpec {
	s.dispatcher = mo.Some(d)
	return s
}

func (s *RequestSpec) Param(key, value string) *RequestSpec {
	s.params.AddParam(key, value)
	return s
}

func (s *RequestSpec) QueryParam(key, value string) *RequestSpec {
	s.params.AddQueryParam(key, value)
	return s
}

func (s *RequestSpec) FormParam(key, value string) *RequestSpec {
	s.params.AddFormParam(key, value)
	return s
}

func (s *RequestSpec) PathParam(key, value string) *RequestSpec {
	s.params.AddPathParam(key, value)
	return s
}

// When is a no-op that separates parameters from the verb in a call chain.
func (s *RequestSpec) When() *RequestSpec {
	return s
}

// Resolve resolves the accumulated parameters for the method with the effective policy:
// this request's configuration first, then the process-wide default.
func (s *RequestSpec) Resolve(method string) *paramx.Resolved {
	layers := make([]paramx.ParamConfig, 0, 2)
	if cfg, ok := s.config.Get(); ok {
		layers = append(layers, cfg)
	}
	layers = append(layers, paramx.DefaultConfig())
	return paramx.Resolve(s.params, paramx.Effective(layers...), method)
}

func (s *RequestSpec) Get(path string) (*Response, error) {
	return s.Send(context.Background(), http.MethodGet, path)
}

func (s *RequestSpec) Post(path string) (*Response, error) {
	return s.Send(context.Background(), http.MethodPost, path)
}

func (s *RequestSpec) Put(path string) (*Response, error) {
	return s.Send(context.Background(), http.MethodPut, path)
}

func (s *RequestSpec) Patch(path string) (*Response, error) {
	return s.Send(context.Background(), http.MethodPatch, path)
}

func (s *RequestSpec) Delete(path string) (*Response, error) {
	return s.Send(context.Background(), http.MethodDelete, path)
}

// Send resolves the parameters and dispatches the request. The method is case-insensitive.
func (s *RequestSpec) Send(ctx context.Context, method, path string) (*Response, error) {
	method = strings.ToUpper(method)
	d := s.dispatcher.OrElse(current())
	if d == nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNoDispatcher)
	}
	req := &Request{
		Method: method,
		Path:   path,
		Params: s.Resolve(method),
	}
	resp, err := d.Dispatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
