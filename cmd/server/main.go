// @title Folio API
// @version 1.0
// @description Portfolio reporting API: range reports, charts, metrics and transaction posting.
// @BasePath /api
// @securityDefinitions.apikey InternalSecret
// @in header
// @name Authorization
// @securityDefinitions.apikey Session
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Portfolio reporting API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.AddCommand(newServeCmd(), newRangeCmd(), newSnapshotsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
