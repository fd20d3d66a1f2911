package mockmvc

import (
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is the outcome of a dispatched request with the body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponse reads and closes the body of r.
func NewResponse(r *http.Response) *Response {
	defer r.Body.Close()
	body, _ := io.ReadAll(r.Body)
	return &Response{
		StatusCode: r.StatusCode,
		Header:     r.Header,
		Body:       body,
	}
}

// JSON evaluates a gjson path against the body.
func (r *Response) JSON(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func (r *Response) String() string {
	return string(r.Body)
}
