package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opalscope/internal/dialect"
)

// loadDialect honours --config, then the nearest opalscope.toml, then the
// built-in default.
func loadDialect(cmd *cobra.Command) (*dialect.Dialect, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	d, path, err := dialect.Resolve(explicit, wd)
	if err != nil {
		return nil, err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if path != "" && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "using dialect %s\n", path)
	}
	return &d, nil
}
