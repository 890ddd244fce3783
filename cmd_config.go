package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/Rshep3087/dateperiod/period"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long:  `Commands for creating and inspecting the dateperiod configuration file.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Write a default TOML configuration file to --config or the user config directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return configInitRun(cmd.OutOrStdout(), cfgFile, force)
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after applying flags, environment variables and the config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return outputConfigTable(cmd.OutOrStdout(), configFromViper(v), v.ConfigFileUsed())
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long:  `Load the configuration file and check that its offset and default period resolve.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cfgFile
			if path == "" {
				path = v.ConfigFileUsed()
			}
			return configValidateRun(cmd.OutOrStdout(), path)
		},
	}

	cmd.AddCommand(initCmd, showCmd, validateCmd)
	return cmd
}

func configInitRun(w io.Writer, path string, force bool) error {
	if path == "" {
		var err error
		path, err = defaultConfigFilePath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file %s: %w", path, err)
	}

	if err := saveConfigToFile(path, defaultConfig()); err != nil {
		return err
	}

	log.Debug("wrote config file", "file", path)
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func configValidateRun(w io.Writer, path string) error {
	if path == "" {
		return errors.New("no config file found (use --config to name one)")
	}

	config, err := loadConfigFromFile(path)
	if err != nil {
		return err
	}

	if _, err := period.ParseOffset(config.Offset); err != nil {
		return fmt.Errorf("invalid offset in %s: %w", path, err)
	}
	if config.DefaultPeriod != "" {
		if _, err := period.ResolveRange(config.DefaultPeriod, config.Offset); err != nil {
			return fmt.Errorf("invalid default_period in %s: %w", path, err)
		}
	}
	if config.Currency != "" && money.GetCurrency(config.Currency) == nil {
		return fmt.Errorf("unknown currency %q in %s", config.Currency, path)
	}

	fmt.Fprintf(w, "%s is valid\n", path)
	return nil
}

func outputConfigTable(w io.Writer, config Config, configPathUsed string) error {
	if configPathUsed == "" {
		configPathUsed = "(none)"
	}

	offset := config.Offset
	if offset == "" {
		offset = "(default +00:00)"
	}
	defaultPeriod := config.DefaultPeriod
	if defaultPeriod == "" {
		defaultPeriod = "(not set)"
	}

	t := createStyledTable("SETTING", "VALUE")
	t.Row("Config File", configPathUsed)
	t.Row("Debug", strconv.FormatBool(config.Debug))
	t.Row("Offset", offset)
	t.Row("Default Period", defaultPeriod)
	t.Row("Token", maskSensitiveValue(config.Token))
	t.Row("Currency", config.Currency)
	t.Row("Debits as Negative", strconv.FormatBool(config.DebitsAsNegative))

	fmt.Fprintln(w, t)

	return nil
}
