// Command portfolioctl is the operator tool for the portfolio service:
// it syncs local media to object storage, pushes content documents to the
// remote config store, and triggers render cache revalidation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jaq-h/portfolio-service/internal/config"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "portfolioctl",
		Short: "Operator tooling for the portfolio service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func main() {
	// Load .env early so subcommand setup sees the environment.
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is env-only configuration)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("portfolioctl version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(syncMediaCommand())
	rootCmd.AddCommand(pushContentCommand())
	rootCmd.AddCommand(revalidateCommand())
}

// setup loads configuration and builds the logger shared by all subcommands.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := "info"
	if debug || cfg.Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:       level,
		Development: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}
