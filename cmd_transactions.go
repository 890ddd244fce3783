package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/Rshep3087/dateperiod/period"
	"github.com/charmbracelet/log"
	lm "github.com/icco/lunchmoney"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCurrency       = "USD"
	uncategorizedCategory = "Uncategorized"
	transactionDateLayout = "2006-01-02"
)

// transactionsGetter defines the interface for fetching the data a period report needs.
type transactionsGetter interface {
	GetTransactions(ctx context.Context, filters *lm.TransactionFilters) ([]*lm.Transaction, error)
	GetCategories(ctx context.Context) ([]*lm.Category, error)
}

// transactionsGetterFactory creates a transactionsGetter from the loaded configuration.
type transactionsGetterFactory func(cfg Config) (transactionsGetter, error)

// newLunchMoneyGetter creates a Lunch Money client with request logging.
func newLunchMoneyGetter(cfg Config) (transactionsGetter, error) {
	if cfg.Token == "" {
		return nil, errors.New("API token is required (set via --token flag, " +
			"LUNCHMONEY_API_TOKEN environment variable, or config file)")
	}

	lmc, err := lm.NewClient(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Lunch Money client: %w", err)
	}

	transport := lmc.HTTP.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	lmc.HTTP.Transport = newLoggingTransport(transport, log.Default())

	return lmc, nil
}

// TransactionLine is a single transaction inside a period report.
type TransactionLine struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Payee    string `json:"payee"`
	Category string `json:"category"`
	Amount   string `json:"amount"`

	amount   *money.Money
	excluded bool
}

// CategoryTotal sums the transactions of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Total    string `json:"total"`

	total *money.Money
}

// PeriodReport is the output of the transactions command.
type PeriodReport struct {
	Period       ResolvedPeriod    `json:"period"`
	Transactions []TransactionLine `json:"transactions"`
	Categories   []CategoryTotal   `json:"categories"`
	Total        string            `json:"total"`
}

// convertTransactionToLine converts a Lunch Money transaction using the category lookup.
func convertTransactionToLine(t *lm.Transaction, categories map[int64]*lm.Category) (TransactionLine, error) {
	amount, err := t.ParsedAmount()
	if err != nil {
		return TransactionLine{}, fmt.Errorf("parsing amount of transaction %d: %w", t.ID, err)
	}

	line := TransactionLine{
		ID:       int64(t.ID),
		Date:     t.Date,
		Payee:    t.Payee,
		Category: uncategorizedCategory,
		Amount:   amount.Display(),
		amount:   amount,
	}

	if category, ok := categories[int64(t.CategoryID)]; ok {
		line.Category = category.Name
		line.excluded = category.ExcludeFromTotals
	}

	return line, nil
}

// buildPeriodReport keeps the lines dated inside rng and totals them per category.
// Lines in another currency than currency are listed but not totalled.
func buildPeriodReport(token string, rng period.Range, lines []TransactionLine, currency string) PeriodReport {
	report := PeriodReport{
		Period:       convertRangeToResolvedPeriod(token, rng),
		Transactions: []TransactionLine{},
		Categories:   []CategoryTotal{},
	}

	total := money.New(0, currency)
	byCategory := make(map[string]*CategoryTotal)

	for _, line := range lines {
		date, err := time.ParseInLocation(transactionDateLayout, line.Date, rng.Start.Location())
		if err != nil {
			log.Warn("skipping transaction with unreadable date", "id", line.ID, "date", line.Date)
			continue
		}
		if !rng.Contains(date) {
			log.Debug("skipping transaction outside period", "id", line.ID, "date", line.Date)
			continue
		}

		report.Transactions = append(report.Transactions, line)
		if line.excluded || line.amount == nil {
			continue
		}

		sum, err := total.Add(line.amount)
		if err != nil {
			log.Debug("not totalling transaction", "id", line.ID, "error", err)
			continue
		}
		total = sum

		ct, ok := byCategory[line.Category]
		if !ok {
			ct = &CategoryTotal{Category: line.Category, total: money.New(0, currency)}
			byCategory[line.Category] = ct
		}
		ct.total, _ = ct.total.Add(line.amount)
		ct.Count++
	}

	for _, ct := range byCategory {
		ct.Total = ct.total.Display()
		report.Categories = append(report.Categories, *ct)
	}

	// largest totals first, by magnitude
	sort.Slice(report.Categories, func(i, j int) bool {
		a := report.Categories[i].total.Absolute().Amount()
		b := report.Categories[j].total.Absolute().Amount()
		if a == b {
			return report.Categories[i].Category < report.Categories[j].Category
		}
		return a > b
	})

	report.Total = total.Display()

	return report
}

// transactionsCommand encapsulates the dependencies for the transactions command.
type transactionsCommand struct {
	v         *viper.Viper
	newGetter transactionsGetterFactory
}

func newTransactionsCmd(v *viper.Viper, newGetter transactionsGetterFactory) *cobra.Command {
	c := transactionsCommand{v: v, newGetter: newGetter}
	cmd := &cobra.Command{
		Use:   "transactions [TOKEN]",
		Short: "Report Lunch Money transactions for a period",
		Long: `Resolve TOKEN into a period and list the Lunch Money transactions dated within it,
with totals per category. With no token the --default period is used.`,
		Example: `  dateperiod transactions previous-month
  dateperiod transactions 2015-Q1 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	addOutputFlag(cmd)
	cmd.Flags().String("token", "", "the API token for Lunch Money")
	cmd.Flags().String("currency", defaultCurrency, "currency to total amounts in")
	cmd.Flags().Bool("debits-as-negative", false, "show debits as negative numbers")

	_ = v.BindPFlag("token", cmd.Flags().Lookup("token"))
	_ = v.BindPFlag("currency", cmd.Flags().Lookup("currency"))
	_ = v.BindPFlag("debits_as_negative", cmd.Flags().Lookup("debits-as-negative"))

	return cmd
}

// run executes the transactions command.
func (c *transactionsCommand) run(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	resolver, err := newResolver(c.v)
	if err != nil {
		return err
	}

	opts := periodOptions(c.v)
	var token string
	if len(args) > 0 {
		token = args[0]
	}

	rng, err := resolver.ResolveWith(token, opts)
	if err != nil {
		return fmt.Errorf("failed to resolve period: %w", err)
	}
	if token == "" {
		token = opts.Default
	}

	cfg := configFromViper(c.v)
	getter, err := c.newGetter(cfg)
	if err != nil {
		return err
	}

	ts, categories, err := fetchPeriodData(cmd.Context(), getter, rng, cfg.DebitsAsNegative)
	if err != nil {
		return err
	}

	lines := make([]TransactionLine, 0, len(ts))
	for _, t := range ts {
		line, convErr := convertTransactionToLine(t, categories)
		if convErr != nil {
			log.Warn("skipping transaction", "error", convErr)
			continue
		}
		lines = append(lines, line)
	}

	report := buildPeriodReport(token, rng, lines, cfg.Currency)

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), report)
	case tableOutputFormat:
		return outputPeriodReportTable(cmd.OutOrStdout(), report)
	default:
		return errors.New("unsupported output format")
	}
}

// fetchPeriodData fetches the transactions dated within rng and the categories in parallel.
func fetchPeriodData(
	ctx context.Context,
	getter transactionsGetter,
	rng period.Range,
	debitsAsNegative bool,
) ([]*lm.Transaction, map[int64]*lm.Category, error) {
	sd := rng.StartDate()
	ed := rng.EndDate()

	var ts []*lm.Transaction
	var cs []*lm.Category

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Debug("fetching transactions", "start_date", sd, "end_date", ed)
		fetched, err := getter.GetTransactions(ctx, &lm.TransactionFilters{
			DebitAsNegative: &debitsAsNegative,
			StartDate:       &sd,
			EndDate:         &ed,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}
		ts = fetched
		return nil
	})

	g.Go(func() error {
		fetched, err := getter.GetCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		cs = fetched
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	categories := make(map[int64]*lm.Category, len(cs))
	for _, category := range cs {
		categories[int64(category.ID)] = category
	}

	return ts, categories, nil
}

func outputPeriodReportTable(w io.Writer, report PeriodReport) error {
	fmt.Fprintf(w, "%s (%s): %s - %s\n",
		report.Period.Label, report.Period.Kind, report.Period.Start, report.Period.End)

	t := createStyledTable("ID", "DATE", "PAYEE", "CATEGORY", "AMOUNT")
	for _, line := range report.Transactions {
		payee := line.Payee
		if payee == "" {
			payee = "-"
		}
		t.Row(fmt.Sprint(line.ID), line.Date, payee, line.Category, line.Amount)
	}
	fmt.Fprintln(w, t)

	totals := createStyledTable("CATEGORY", "COUNT", "TOTAL")
	for _, ct := range report.Categories {
		totals.Row(ct.Category, fmt.Sprint(ct.Count), ct.Total)
	}
	totals.Row("Total", "-", report.Total)
	fmt.Fprintln(w, totals)

	return nil
}
