package resolve

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/kcmvp/paramx"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tidwall/match"
)

type options struct {
	method     string
	params     []string
	queries    []string
	forms      []string
	paths      []string
	request    string
	query      string
	form       string
	replaceAll bool
	mergeAll   bool
	keys       string
	output     string
}

// New returns the `resolve` command. It feeds the submissions given as flags through the
// accumulator and prints the resolved parameters of every category.
func New() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve repeated parameters with the configured merge/replace strategies.",
		Example: `  paramx resolve -X POST -p list=value1 -p list=value2 -q list2=value3 --request-strategy replace
  paramx resolve --path id=1 --path id=2 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.method, "method", "X", http.MethodGet, "HTTP method, decides which categories fold into request parameters")
	f.StringArrayVarP(&opts.params, "param", "p", nil, "request parameter key=value, repeatable")
	f.StringArrayVarP(&opts.queries, "query", "q", nil, "query parameter key=value, repeatable")
	f.StringArrayVarP(&opts.forms, "form", "f", nil, "form parameter key=value, repeatable")
	f.StringArrayVar(&opts.paths, "path", nil, "path parameter key=value, repeatable")
	f.StringVar(&opts.request, "request-strategy", "", "merge or replace for request parameters")
	f.StringVar(&opts.query, "query-strategy", "", "merge or replace for query parameters")
	f.StringVar(&opts.form, "form-strategy", "", "merge or replace for form parameters")
	f.BoolVar(&opts.replaceAll, "replace-all", false, "replace all parameters unless a category says otherwise")
	f.BoolVar(&opts.mergeAll, "merge-all", false, "merge all parameters unless a category says otherwise")
	f.StringVar(&opts.keys, "keys", "*", "only print keys matching this glob pattern")
	f.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	cmd.MarkFlagsMutuallyExclusive("replace-all", "merge-all")
	return cmd
}

func run(out io.Writer, opts *options) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	acc, err := opts.accumulate()
	if err != nil {
		return err
	}
	rs := paramx.Resolve(acc, paramx.Effective(cfg, paramx.DefaultConfig()), opts.method)

	switch strings.ToLower(opts.output) {
	case "json":
		return writeJSON(out, rs, opts.keys)
	case "text":
		writeText(out, rs, opts.keys)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", opts.output)
	}
}

func (o *options) config() (paramx.ParamConfig, error) {
	cfg := paramx.NewParamConfig()
	if o.replaceAll {
		cfg = cfg.ReplaceAllParameters()
	}
	if o.mergeAll {
		cfg = cfg.MergeAllParameters()
	}
	setters := []lo.Tuple2[string, func(paramx.ParamConfig, paramx.UpdateStrategy) paramx.ParamConfig]{
		{A: o.request, B: paramx.ParamConfig.RequestParamsUpdateStrategy},
		{A: o.query, B: paramx.ParamConfig.QueryParamsUpdateStrategy},
		{A: o.form, B: paramx.ParamConfig.FormParamsUpdateStrategy},
	}
	for _, s := range setters {
		if s.A == "" {
			continue
		}
		strategy, err := paramx.ParseStrategy(s.A)
		if err != nil {
			return cfg, err
		}
		cfg = s.B(cfg, strategy)
	}
	return cfg, nil
}

func (o *options) accumulate() (*paramx.Accumulator, error) {
	acc := paramx.NewAccumulator()
	groups := []lo.Tuple2[[]string, func(key, value string) *paramx.Accumulator]{
		{A: o.params, B: acc.AddParam},
		{A: o.queries, B: acc.AddQueryParam},
		{A: o.forms, B: acc.AddFormParam},
		{A: o.paths, B: acc.AddPathParam},
	}
	for _, g := range groups {
		for _, pair := range g.A {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
			}
			g.B(key, value)
		}
	}
	return acc, nil
}

func filtered(params paramx.Params, pattern string) []string {
	return lo.Filter(params.Keys(), func(key string, _ int) bool {
		return match.Match(key, pattern)
	})
}

func writeText(out io.Writer, rs *paramx.Resolved, pattern string) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(out, "%s\n", rs.Method)
	for _, c := range paramx.Categories {
		params := rs.Category(c)
		keys := filtered(params, pattern)
		if len(keys) == 0 {
			continue
		}
		header.Fprintf(out, "[%s]\n", c)
		for _, key := range keys {
			fmt.Fprintf(out, "  %s = %s\n", key, params.Value(key))
		}
	}
}

func writeJSON(out io.Writer, rs *paramx.Resolved, pattern string) error {
	doc := map[string]any{"method": rs.Method}
	for _, c := range paramx.Categories {
		params := rs.Category(c)
		doc[c.String()] = lo.SliceToMap(filtered(params, pattern), func(key string) (string, string) {
			return key, params.Value(key)
		})
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
