package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kcmvp/paramx"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	cfgName     = "application"
	testCfgName = "application_test"
	envPrefix   = "paramx"
)

// Configuration keys. Values are "merge" or "replace".
const (
	KeyAll     = "param.all"
	KeyRequest = "param.request"
	KeyQuery   = "param.query"
	KeyForm    = "param.form"
)

var (
	cfg    *viper.Viper
	cfgErr error
	once   sync.Once
)

// Config loads the application configuration.
//
// Rules:
//  1. If the current process is running `go test`, it tries application_test.yml.
//  2. Otherwise it tries application.yml.
//  3. It searches the project root, '.' and './config' of both.
//  4. A .env file next to the config is loaded first and PARAMX_* environment variables
//     override file values (PARAMX_PARAM_QUERY for param.query).
//
// A missing config file is not an error, a malformed one is and the error names the file.
func Config() mo.Result[*viper.Viper] {
	once.Do(func() {
		cfg, cfgErr = loadViper(false)
	})
	if cfgErr != nil {
		return mo.Err[*viper.Viper](fmt.Errorf("can not load config: %w", cfgErr))
	}
	return mo.Ok(cfg)
}

// ParamConfig builds the process-wide parameter configuration from Config.
func ParamConfig() mo.Result[paramx.ParamConfig] {
	res := Config()
	if res.IsError() {
		return mo.Err[paramx.ParamConfig](res.Error())
	}
	return FromViper(res.MustGet())
}

// InstallDefaults loads ParamConfig and makes it the process-wide default.
func InstallDefaults() error {
	res := ParamConfig()
	if res.IsError() {
		return res.Error()
	}
	paramx.SetDefaultConfig(res.MustGet())
	return nil
}

type setter func(paramx.ParamConfig, paramx.UpdateStrategy) paramx.ParamConfig

func all(c paramx.ParamConfig, s paramx.UpdateStrategy) paramx.ParamConfig {
	if s == paramx.Replace {
		return c.ReplaceAllParameters()
	}
	return c.MergeAllParameters()
}

// FromViper converts the param.* keys of v into a ParamConfig. Unset keys stay unset so
// lower precedence layers still apply.
func FromViper(v *viper.Viper) mo.Result[paramx.ParamConfig] {
	setters := []lo.Tuple2[string, setter]{
		lo.T2[string, setter](KeyAll, all),
		lo.T2[string, setter](KeyRequest, paramx.ParamConfig.RequestParamsUpdateStrategy),
		lo.T2[string, setter](KeyQuery, paramx.ParamConfig.QueryParamsUpdateStrategy),
		lo.T2[string, setter](KeyForm, paramx.ParamConfig.FormParamsUpdateStrategy),
	}
	pc := paramx.NewParamConfig()
	for _, s := range setters {
		raw := strings.TrimSpace(v.GetString(s.A))
		if raw == "" {
			continue
		}
		strategy, err := paramx.ParseStrategy(raw)
		if err != nil {
			return mo.Err[paramx.ParamConfig](fmt.Errorf("%s: %w", s.A, err))
		}
		pc = s.B(pc, strategy)
	}
	return mo.Ok(pc)
}

func loadViper(required bool) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dirs := searchDirs()
	loadDotEnv(dirs)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	name := cfgName
	if isTestProcess() {
		name = testCfgName
	}
	v.SetConfigName(name)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", lo.CoalesceOrEmpty(v.ConfigFileUsed(), name+".yml"), err)
	}
	return v, nil
}

// searchDirs returns the project root (nearest parent with a go.mod) and the current
// working directory, each followed by its "config" subdirectory.
func searchDirs() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return []string{".", "./config"}
	}
	var dirs []string
	if root, ok := findProjectRoot(cwd); ok {
		dirs = append(dirs, root, filepath.Join(root, "config"))
	}
	dirs = append(dirs, cwd, filepath.Join(cwd, "config"))
	return lo.Uniq(dirs)
}

// loadDotEnv loads the first .env found in dirs. Variables already present in the
// environment are kept.
func loadDotEnv(dirs []string) {
	for _, dir := range dirs {
		file := filepath.Join(dir, ".env")
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
			return
		}
	}
}

// findProjectRoot walks upward from `start` until it finds a directory containing a go.mod.
// It returns (root, true) if found, otherwise ("", false).
func findProjectRoot(start string) (string, bool) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isTestProcess detects whether we are running under `go test`.
func isTestProcess() bool {
	// In normal `go test` runs, the test binary is invoked with flags like `-test.v`, `-test.run`, etc.
	for _, a := range os.Args {
		if strings.HasPrefix(a, "-test.") {
			return true
		}
	}

	// Fallback: scan stack frames for *_test.go.
	const maxFrames = 256
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if strings.HasSuffix(f.File, "_test.go") {
			return true
		}
		if !more {
			break
		}
	}

	return false
}
