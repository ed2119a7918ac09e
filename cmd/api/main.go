// Şahintepesi Donation API
//
// Entry point for the donation service: starts hosted checkouts, settles
// gateway callbacks and serves the PDF receipts issued for them.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "donation-api",
	Short:        "Donation payments and receipt service",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with gateway credentials")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(receiptsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
