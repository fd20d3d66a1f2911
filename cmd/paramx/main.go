package main

import (
	"fmt"
	"os"

	"github.com/kcmvp/paramx/app"
	"github.com/kcmvp/paramx/cmd/paramx/resolve"
	"github.com/spf13/cobra"
)

// newRootCmd represents the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "paramx",
		Short: "paramx resolves repeated request parameters.",
		Long: `paramx shows how repeated path, query, form and request parameters collapse
under the merge/replace strategies configured in application.yml, PARAMX_* environment
variables and command line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.InstallDefaults()
		},
	}
	rootCmd.AddCommand(resolve.New())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
