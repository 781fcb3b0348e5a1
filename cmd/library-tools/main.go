// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the library-tools CLI. It exposes the
// library service tools for listing, invocation and citation export.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/library-tools/internal/config"
	"github.com/pdiddy/library-tools/internal/secrets"
	"github.com/pdiddy/library-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// settings is resolved once, before any subcommand runs.
var settings *types.Settings

// rootCmd is the base command for the library-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "library-tools",
	Short: "Library service tools for language models",
	Long: `library-tools wraps the services a research library runs on: the Primo
catalog, OpenAlex, LibGuides, the institutional repository and WorldCat.

Each service contributes tools that take JSON arguments and return text
written for a language model. List them with "tools", run one with "call",
and export bibliographic records as CSL-YAML with "cite".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(viper.GetString("log-level"))

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			slog.Debug("loaded secrets", "count", len(s))
		}
		settings = config.Load(viper.GetViper(), secrets.ByEnvName(s))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./library-tools.yaml or ~/.config/library-tools/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of secret files (one file per key)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindEnv("log-level", "LOG_LEVEL")
}

func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("library-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "library-tools"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogger installs a text handler on stderr at the named level.
func setupLogger(level string) {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
