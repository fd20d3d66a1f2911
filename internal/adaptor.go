package internal

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/kcmvp/paramx"
	"github.com/valyala/fasttemplate"
)

var ErrUnresolvedPathParam = errors.New("unresolved path parameter")

// Expand substitutes every {name} placeholder of the path template with the resolved path
// parameter of that name. Values are path-escaped. A placeholder without a parameter is an
// error; parameters the template doesn't mention are ignored. An unclosed brace is kept as is.
func Expand(template string, path paramx.Params) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(template, "{", "}", func(w io.Writer, name string) (int, error) {
		value, ok := path.Get(name)
		if !ok {
			return 0, fmt.Errorf("%w '%s' in %s", ErrUnresolvedPathParam, name, template)
		}
		return io.WriteString(w, url.PathEscape(value))
	})
}
