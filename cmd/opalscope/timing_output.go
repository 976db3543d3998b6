package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"opalscope/internal/observ"
)

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show || timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
