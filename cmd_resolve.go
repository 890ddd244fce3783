package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Rshep3087/dateperiod/period"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResolvedPeriod is the output shape of a single resolved token.
type ResolvedPeriod struct {
	Token string `json:"token"`
	Kind  string `json:"kind,omitempty"`
	Label string `json:"label,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Error string `json:"error,omitempty"`
}

// convertRangeToResolvedPeriod converts a resolved range to its output shape.
func convertRangeToResolvedPeriod(token string, rng period.Range) ResolvedPeriod {
	return ResolvedPeriod{
		Token: token,
		Kind:  cases.Title(language.English).String(rng.Kind.String()),
		Label: rng.Label(),
		Start: rng.Start.Format(period.TimestampLayout),
		End:   rng.End.Format(period.TimestampLayout),
	}
}

// resolveCommand encapsulates the dependencies for the resolve command.
type resolveCommand struct {
	v *viper.Viper
}

func newResolveCmd(v *viper.Viper) *cobra.Command {
	c := resolveCommand{v: v}
	cmd := &cobra.Command{
		Use:   "resolve [TOKEN...]",
		Short: "Resolve period tokens into start and end timestamps",
		Long: `Resolve one or more period tokens into start and end timestamps.

Supported tokens: today, yesterday (yday), current-month, previous-month,
current-year, previous-year, mtd, ytd, qtd, YYYY, YYYY-MM, YYYY-QN and YYYY-MM-DD.
With no token the --default period is resolved.`,
		Example: `  dateperiod resolve 2014 2015-Q1 --offset +0700
  dateperiod resolve mtd --now 2014-08-19T15:04:05Z -o json`,
		RunE: c.run,
	}

	addOutputFlag(cmd)
	cmd.Flags().Bool("lenient", false, "report unresolvable tokens instead of failing")

	return cmd
}

// run executes the resolve command.
func (c *resolveCommand) run(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}
	lenient, _ := cmd.Flags().GetBool("lenient")

	resolver, err := newResolver(c.v)
	if err != nil {
		return err
	}

	tokens := args
	if len(tokens) == 0 {
		tokens = []string{""}
	}

	periods, err := resolveTokens(resolver, tokens, periodOptions(c.v), lenient)
	if err != nil {
		return err
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), periods)
	case tableOutputFormat:
		return outputResolvedPeriodsTable(cmd.OutOrStdout(), periods)
	default:
		return errors.New("unsupported output format")
	}
}

// resolveTokens resolves every token. In lenient mode unresolvable tokens are
// kept with an error marker; otherwise the first failure is returned.
func resolveTokens(
	resolver *period.Resolver,
	tokens []string,
	opts period.Options,
	lenient bool,
) ([]ResolvedPeriod, error) {
	periods := make([]ResolvedPeriod, 0, len(tokens))
	for _, token := range tokens {
		if lenient {
			if token == "" {
				token = opts.Default
			}
			rng, ok := resolver.TryResolveRange(token, opts.Offset)
			if !ok {
				log.Debug("skipping unresolvable period", "token", token)
				periods = append(periods, ResolvedPeriod{Token: token, Error: "unresolvable"})
				continue
			}
			periods = append(periods, convertRangeToResolvedPeriod(token, rng))
			continue
		}

		rng, err := resolver.ResolveWith(token, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve period: %w", err)
		}
		if token == "" {
			token = opts.Default
		}

		log.Debug("resolved period", "token", token, "start", rng.Start, "end", rng.End)
		periods = append(periods, convertRangeToResolvedPeriod(token, rng))
	}

	return periods, nil
}

func outputResolvedPeriodsTable(w io.Writer, periods []ResolvedPeriod) error {
	t := createStyledTable("TOKEN", "KIND", "LABEL", "START", "END")

	for _, p := range periods {
		if p.Error != "" {
			t.Row(p.Token, "-", "-", "-", "-")
			continue
		}
		t.Row(p.Token, p.Kind, p.Label, p.Start, p.End)
	}

	fmt.Fprintln(w, t)

	return nil
}
