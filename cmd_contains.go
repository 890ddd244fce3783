package main

import (
	"errors"
	"fmt"

	"github.com/Rshep3087/dateperiod/period"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errOutsidePeriod = errors.New("timestamp is outside the period")

func newContainsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "contains TOKEN TIMESTAMP",
		Short: "Check whether a timestamp falls within a period",
		Long: `Check whether a timestamp falls within the period named by TOKEN, boundaries included.
Timestamps without an offset are read at the period's offset. Exits non-zero when
the timestamp is outside the period.`,
		Example: `  dateperiod contains 2014-08 "2014-08-31 23:59:59"
  dateperiod contains qtd 2014-05-02T01:00:00Z --offset -0300`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver(v)
			if err != nil {
				return err
			}

			rng, err := resolver.ResolveWith(args[0], periodOptions(v))
			if err != nil {
				return fmt.Errorf("failed to resolve period: %w", err)
			}

			ts, err := dateparse.ParseIn(args[1], rng.Start.Location())
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", args[1], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s in %s: %t\n",
				ts.Format(period.TimestampLayout), rng.Label(), rng.Contains(ts))

			if !rng.Contains(ts) {
				return errOutsidePeriod
			}
			return nil
		},
	}
}
