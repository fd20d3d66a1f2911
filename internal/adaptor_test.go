package internal

import (
	"context"
	"net/http"
	"testing"

	"github.com/kcmvp/paramx"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	acc := paramx.NewAccumulator().
		AddPathParam("id", "1").
		AddPathParam("id", "2").
		AddPathParam("name", "a b").
		AddPathParam("unused", "x")
	path := paramx.Resolve(acc, paramx.Effective(), http.MethodGet).Path

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  error
	}{
		{name: "no placeholder", template: "/users", want: "/users"},
		{name: "last value wins", template: "/users/{id}", want: "/users/2"},
		{name: "escaped", template: "/users/{id}/{name}", want: "/users/2/a%20b"},
		{name: "with query", template: "/users/{id}?x=1", want: "/users/2?x=1"},
		{name: "unclosed brace", template: "/users/{id", want: "/users/{id"},
		{name: "unclosed after placeholder", template: "/users/{id}/{name", want: "/users/2/{name"},
		{name: "repeated", template: "/{id}/{id}", want: "/2/2"},
		{name: "missing", template: "/users/{other}", wantErr: ErrUnresolvedPathParam},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expand(tc.template, path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParamsContext(t *testing.T) {
	require.Nil(t, Params(context.Background()))
	require.Nil(t, Lookup("not params"))

	rs := paramx.Resolve(paramx.NewAccumulator(), paramx.Effective(), http.MethodGet)
	ctx := WithParams(context.Background(), rs)
	require.Same(t, rs, Params(ctx))
}
