package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// cfgFile is the config file path given with --config.
var cfgFile string

// newRootCmd builds the command tree. Flags are bound to v so that flag values
// take precedence over the environment and the config file.
func newRootCmd(v *viper.Viper, newGetter transactionsGetterFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dateperiod",
		Short: "Resolve date period tokens into exact time ranges",
		Long: `Resolve human-readable date periods such as 2014, 2014-08, 2015-Q1, today or mtd
into start and end timestamps at a fixed UTC offset.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Setup logging
			log.SetLevel(log.InfoLevel)
			if v.GetBool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dateperiod/config.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("offset", "", "UTC offset to resolve periods at, e.g. +0700 (default +00:00)")
	rootCmd.PersistentFlags().String("default", "", "period to resolve when no token is given")
	rootCmd.PersistentFlags().String("now", "", "resolve relative periods against this moment instead of the clock")

	// Bind flags to viper
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("offset", rootCmd.PersistentFlags().Lookup("offset"))
	_ = v.BindPFlag("default_period", rootCmd.PersistentFlags().Lookup("default"))
	_ = v.BindPFlag("now", rootCmd.PersistentFlags().Lookup("now"))

	// Bind environment variables
	_ = v.BindEnv("offset", "DATEPERIOD_OFFSET")
	_ = v.BindEnv("default_period", "DATEPERIOD_DEFAULT_PERIOD")
	_ = v.BindEnv("token", "LUNCHMONEY_API_TOKEN")

	v.SetDefault("currency", defaultCurrency)

	// Add subcommands
	rootCmd.AddCommand(newResolveCmd(v))
	rootCmd.AddCommand(newContainsCmd(v))
	rootCmd.AddCommand(newTransactionsCmd(v, newGetter))
	rootCmd.AddCommand(newConfigCmd(v))

	return rootCmd
}

// Execute builds the command tree on the global viper instance and runs it.
func Execute() {
	cobra.OnInitialize(func() { initConfig(viper.GetViper()) })

	rootCmd := newRootCmd(viper.GetViper(), newLunchMoneyGetter)
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper) {
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		v.AddConfigPath(".")
		v.SetConfigName("dateperiod")
		v.SetConfigType("toml")

		// User config directory
		if configDir, configErr := os.UserConfigDir(); configErr == nil {
			v.AddConfigPath(filepath.Join(configDir, "dateperiod"))
		}

		// User home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "dateperiod"))
		}

		// System-wide config directory (lowest precedence)
		v.AddConfigPath("/etc/dateperiod")
	}

	v.SetEnvPrefix("dateperiod")
	v.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
		return
	}

	log.Debug("Using config file", "file", v.ConfigFileUsed())
}

// Utility functions for output formatting.
func outputJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonData))
	return nil
}

// createStyledTable creates a table with the standard styling used across commands.
func createStyledTable(headers ...string) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}

// addOutputFlag registers the standard output format flag used across commands.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

// validateOutputFormat returns the --output value if it names a supported format.
func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")
	validFormats := []string{tableOutputFormat, jsonOutputFormat}
	if !slices.Contains(validFormats, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, validFormats)
	}
	return outputFormat, nil
}
