package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the cms-admin command tree
func NewRootCommand() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "cms-admin",
		Short: "Simple CMS administration tool",
		Long: `Simple CMS administration tool

Runs schema migrations, inspects content types and version history, and
issues API tokens. Configuration is read from CMS_* environment variables
and an optional .env file.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewTypesCommand())
	rootCmd.AddCommand(NewVersionsCommand())
	rootCmd.AddCommand(NewTokenCommand())

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.ServerConfig, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(config.WithDotEnv(envFile))
}

// serviceFromFlags builds a service from configuration. Logging is quiet
// unless CMS_LOG_LEVEL is debug.
func serviceFromFlags(cmd *cobra.Command) (simplecms.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := zap.NewNop()
	if cfg.LogLevel == "debug" {
		if logger, err = cfg.BuildLogger(); err != nil {
			return nil, nil, err
		}
	}
	return cfg.BuildService(context.Background(), logger)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
