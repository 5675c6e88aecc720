// Command toolsailctl là CLI vận hành: migrate schema, nạp dữ liệu mẫu, mint token, export tools.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"toolsail-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "toolsailctl",
		Short:         "Operator CLI for the Toolsail backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(exportCmd())
	return rootCmd
}
