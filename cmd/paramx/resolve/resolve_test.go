package resolve

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveJSON(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]string
	}{
		{
			name: "merge by default",
			args: []string{"-p", "list=value1", "-p", "list=value2"},
			want: map[string]string{"method": "GET", "request.list": "value1,value2"},
		},
		{
			name: "path replaced",
			args: []string{"--path", "value=value1", "--path", "value=value2", "--merge-all"},
			want: map[string]string{"path.value": "value2"},
		},
		{
			name: "request replace only",
			args: []string{
				"-X", "post", "--request-strategy", "replace",
				"-p", "list=value1", "-p", "list=value2",
				"-q", "list2=value3", "-q", "list2=value4",
				"-f", "list3=value5", "-f", "list3=value6",
			},
			want: map[string]string{
				"method":       "POST",
				"request.list": "value2",
				"query.list2":  "value3,value4",
				"form.list3":   "value5,value6",
			},
		},
		{
			name: "category beats replace-all",
			args: []string{"--replace-all", "--query-strategy", "merge", "-q", "a=1", "-q", "a=2", "-f", "b=1", "-f", "b=2"},
			want: map[string]string{"query.a": "1,2", "form.b": "2"},
		},
		{
			name: "empty value",
			args: []string{"-q", "a="},
			want: map[string]string{"query.a": ""},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, append(tc.args, "-o", "json")...)
			require.NoError(t, err)
			for path, want := range tc.want {
				res := gjson.Get(out, path)
				require.True(t, res.Exists(), path)
				require.Equal(t, want, res.String(), path)
			}
		})
	}
}

func TestResolveKeysFilter(t *testing.T) {
	out, err := execute(t, "-q", "list=1", "-q", "list2=2", "-q", "other=3", "--keys", "list*", "-o", "json")
	require.NoError(t, err)
	require.True(t, gjson.Get(out, "query.list").Exists())
	require.True(t, gjson.Get(out, "query.list2").Exists())
	require.False(t, gjson.Get(out, "query.other").Exists())
}

func TestResolveText(t *testing.T) {
	out, err := execute(t, "-q", "list=value1", "-q", "list=value2")
	require.NoError(t, err)
	require.Contains(t, out, "GET")
	require.Contains(t, out, "[query]")
	require.Contains(t, out, "  list = value1,value2")
	require.NotContains(t, out, "[form]")
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing equals", args: []string{"-q", "list"}},
		{name: "empty key", args: []string{"-q", "=value"}},
		{name: "bad strategy", args: []string{"--form-strategy", "append"}},
		{name: "bad output", args: []string{"-o", "yaml"}},
		{name: "exclusive shortcuts", args: []string{"--replace-all", "--merge-all"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
		})
	}
}
