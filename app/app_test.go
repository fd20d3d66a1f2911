package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kcmvp/paramx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	cfg, cfgErr = nil, nil
	once = sync.Once{}
	t.Cleanup(func() {
		cfg, cfgErr = nil, nil
		once = sync.Once{}
		paramx.ResetDefaultConfig()
	})
}

func TestConfig_LoadsApplicationTestYml(t *testing.T) {
	resetConfig(t)

	res := Config()
	require.True(t, res.IsOk())
	v := res.MustGet()
	require.NotNil(t, v)

	// This value comes from application_test.yml
	require.Equal(t, "replace", v.GetString(KeyForm))

	pc := ParamConfig()
	require.True(t, pc.IsOk())
	require.Equal(t, paramx.Replace, pc.MustGet().UpdateStrategy(paramx.Form))
	require.Equal(t, paramx.Merge, pc.MustGet().UpdateStrategy(paramx.Query))
}

func TestConfig_EnvOverridesFile(t *testing.T) {
	resetConfig(t)
	t.Setenv("PARAMX_PARAM_QUERY", "replace")
	t.Setenv("PARAMX_PARAM_FORM", "merge")

	require.NoError(t, InstallDefaults())
	def := paramx.DefaultConfig()
	require.Equal(t, paramx.Replace, def.UpdateStrategy(paramx.Query))
	require.Equal(t, paramx.Merge, def.UpdateStrategy(paramx.Form))
	require.Equal(t, paramx.Merge, def.UpdateStrategy(paramx.Request))
}

func TestConfig_MalformedFile(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	file := filepath.Join(dir, testCfgName+".yml")
	require.NoError(t, os.WriteFile(file, []byte("param: [form\n"), 0o600))
	t.Chdir(dir)

	res := Config()
	require.True(t, res.IsError())
	require.ErrorContains(t, res.Error(), testCfgName+".yml")
	require.Error(t, InstallDefaults())
}

func TestFromViper(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		want    map[paramx.Category]paramx.UpdateStrategy
		wantErr bool
	}{
		{
			name:   "empty",
			values: map[string]any{},
			want: map[paramx.Category]paramx.UpdateStrategy{
				paramx.Request: paramx.Merge, paramx.Query: paramx.Merge, paramx.Form: paramx.Merge,
			},
		},
		{
			name:   "all_replace_with_category_override",
			values: map[string]any{KeyAll: "replace", KeyQuery: "merge"},
			want: map[paramx.Category]paramx.UpdateStrategy{
				paramx.Request: paramx.Replace, paramx.Query: paramx.Merge, paramx.Form: paramx.Replace,
			},
		},
		{
			name:   "request_only",
			values: map[string]any{KeyRequest: "Replace"},
			want: map[paramx.Category]paramx.UpdateStrategy{
				paramx.Request: paramx.Replace, paramx.Query: paramx.Merge, paramx.Form: paramx.Merge,
			},
		},
		{
			name:    "invalid",
			values:  map[string]any{KeyForm: "append"},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tc.values {
				v.Set(k, val)
			}
			res := FromViper(v)
			if tc.wantErr {
				require.True(t, res.IsError())
				require.ErrorIs(t, res.Error(), paramx.ErrUnknownStrategy)
				return
			}
			require.True(t, res.IsOk())
			for c, s := range tc.want {
				require.Equal(t, s, res.MustGet().UpdateStrategy(c), c.String())
			}
			require.Equal(t, paramx.Replace, res.MustGet().UpdateStrategy(paramx.Path))
		})
	}
}
