package mockmvc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kcmvp/paramx"
	"github.com/kcmvp/paramx/internal"
)

const (
	defaultHost = "example.com"
	formMIME    = "application/x-www-form-urlencoded"
)

// Request is what a Dispatcher receives: the verb, the path template and the resolved
// parameters of every category.
type Request struct {
	Method string
	Path   string
	Params *paramx.Resolved
}

// Dispatcher performs a request against a mock server.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *Request) (*Response, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, req *Request) (*Response, error)

func (f DispatcherFunc) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// NewHTTPRequest turns a Request into an *http.Request:
//   - {name} placeholders of the path are replaced by the resolved path parameters,
//   - resolved query parameters are appended to the query string, one pair per value,
//   - resolved form parameters become an urlencoded body for verbs that carry one,
//   - the resolved parameters are stored in the request context, see Params.
//
// A Request without Params is sent with no parameters at all.
func NewHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	params := req.Params
	if params == nil {
		params = paramx.Resolve(paramx.NewAccumulator(), paramx.Effective(), method)
	}
	target, err := internal.Expand(req.Path, params.Path)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", target, err)
	}
	query := u.Query()
	for key, values := range params.Query.All() {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()

	var body *strings.Reader
	withForm := paramx.FoldFor(method).Form && !params.Form.Empty()
	if withForm {
		form := url.Values{}
		for key, values := range params.Form.All() {
			form[key] = values
		}
		body = strings.NewReader(form.Encode())
	} else {
		if !params.Form.Empty() {
			logger().Warn("form parameters ignored", "method", method, "keys", params.Form.Keys())
		}
		body = strings.NewReader("")
	}

	hr, err := http.NewRequestWithContext(internal.WithParams(ctx, params), method, u.String(), body)
	if err != nil {
		return nil, err
	}
	hr.Host = defaultHost
	hr.RequestURI = u.RequestURI()
	if withForm {
		hr.Header.Set("Content-Type", formMIME)
	}
	return hr, nil
}

// Params returns the resolved parameters a dispatched request carries, or nil.
func Params(r *http.Request) *paramx.Resolved {
	return internal.Params(r.Context())
}

type handlerDispatcher struct {
	handler http.Handler
}

// HandlerDispatcher dispatches requests to an http.Handler in process.
func HandlerDispatcher(handler http.Handler) Dispatcher {
	return &handlerDispatcher{handler: handler}
}

func (d *handlerDispatcher) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	hr, err := NewHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	rec := httptest.NewRecorder()
	d.handler.ServeHTTP(rec, hr)
	resp := NewResponse(rec.Result())
	logger().Debug("dispatched", "method", hr.Method, "uri", hr.RequestURI, "status", resp.StatusCode)
	return resp, nil
}

// StandaloneSetup registers routes on a fresh chi router and installs it as the global
// dispatcher. It returns the dispatcher as well.
func StandaloneSetup(routes func(r chi.Router)) Dispatcher {
	mux := chi.NewRouter()
	routes(mux)
	d := HandlerDispatcher(mux)
	Setup(d)
	return d
}
