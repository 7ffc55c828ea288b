package cli

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkastner/lottery-cli-go/internal/config"
	"github.com/bkastner/lottery-cli-go/internal/dividend"
	"github.com/bkastner/lottery-cli-go/internal/fetch"
	"github.com/bkastner/lottery-cli-go/internal/lottery"
	"github.com/bkastner/lottery-cli-go/internal/lottery/eurojackpot"
	"github.com/bkastner/lottery-cli-go/internal/lottery/lotto"
)

func init() {
	rootCmd.AddCommand(eurojackpotCmd)
	rootCmd.AddCommand(lottoCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dividendsCmd)

	eurojackpotCmd.Flags().Int("lookback-days", 0, "How many days to look back")
	eurojackpotCmd.Flags().StringP("output", "o", "", "Output file for the merged results")

	lottoCmd.Flags().StringP("output", "o", "", "Output file for the merged results")

	checkCmd.Flags().Int("lookback-days", 0, "How many days to look back")
	checkCmd.Flags().Float64("ticket-price", 0, "Price per ticket in Euro")
	checkCmd.Flags().String("ticket-file", "", "Path to your tickets JSON file")

	dividendsCmd.Flags().StringP("index", "i", "", "Index names to process, comma-separated (DE_DAX, DE_TECDAX, US_DOW, US_NASDAQ, EU_50)")
	dividendsCmd.Flags().String("output-dir", "", "Directory for the per-index dividend files")
}

var eurojackpotCmd = &cobra.Command{
	Use:   "eurojackpot",
	Short: "Fetch EuroJackpot draw results and merge them into the output file",
	RunE:  handleEurojackpot,
}

var lottoCmd = &cobra.Command{
	Use:   "lotto",
	Short: "Backfill Lotto 6aus49 draw results into the output file",
	RunE:  handleLotto,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "See how much you lost (or won) playing EuroJackpot",
	RunE:  handleCheck,
}

var dividendsCmd = &cobra.Command{
	Use:   "dividends",
	Short: "Build per-index dividend datasets from Yahoo Finance",
	RunE:  handleDividends,
}

// loadConfig builds the effective configuration from file, environment and
// the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if noWait {
		cfg.Wait.Enabled = false
	}
	return cfg, nil
}

// newFetchClient builds the cached HTTP client for the given configuration.
// enableWait further gates the politeness delay; backfill-style commands
// pass false because the cache already absorbs most of the load.
func newFetchClient(cfg *config.Config, enableWait bool, headers map[string]string) *fetch.Client {
	return fetch.NewClient(fetch.Options{
		Store:      fetch.NewDirStore(cfg.CacheDir),
		EnableWait: cfg.Wait.Enabled && enableWait,
		WaitMin:    time.Duration(cfg.Wait.MinSeconds * float64(time.Second)),
		WaitMax:    time.Duration(cfg.Wait.MaxSeconds * float64(time.Second)),
		Headers:    headers,
	})
}

func handleEurojackpot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("lookback-days") {
		cfg.Eurojackpot.LookbackDays, _ = cmd.Flags().GetInt("lookback-days")
	}
	if cmd.Flags().Changed("output") {
		cfg.Eurojackpot.OutputFile, _ = cmd.Flags().GetString("output")
	}

	client := newFetchClient(cfg, true, eurojackpot.Headers)
	results := eurojackpot.FetchResults(cmd.Context(), client, time.Now().UTC(), cfg.Eurojackpot.LookbackDays)

	file := lottery.NewResultFile(cfg.Eurojackpot.OutputFile)
	stats, err := file.Export(results)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Infof("Merged %d EuroJackpot draw results to %s (%d new entries)",
		stats.Total, cfg.Eurojackpot.OutputFile, stats.Added)
	return nil
}

func handleLotto(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Lotto.OutputFile, _ = cmd.Flags().GetString("output")
	}

	// The backfill is cache-heavy; no politeness delay between calls.
	client := newFetchClient(cfg, false, nil)
	file := lottery.NewResultFile(cfg.Lotto.OutputFile)

	return lotto.Backfill(cmd.Context(), client, file, time.Now().UTC())
}

func handleCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("lookback-days") {
		cfg.Eurojackpot.LookbackDays, _ = cmd.Flags().GetInt("lookback-days")
	}
	if cmd.Flags().Changed("ticket-price") {
		cfg.Tickets.Price, _ = cmd.Flags().GetFloat64("ticket-price")
	}
	if cmd.Flags().Changed("ticket-file") {
		cfg.Tickets.File, _ = cmd.Flags().GetString("ticket-file")
	}

	tickets, err := lottery.LoadTickets(cfg.Tickets.File)
	if err != nil {
		return err
	}

	log.Info("Starting Eurojackpot analysis...")

	client := newFetchClient(cfg, true, eurojackpot.Headers)
	results := eurojackpot.FetchResults(cmd.Context(), client, time.Now().UTC(), cfg.Eurojackpot.LookbackDays)

	var totalSpent, totalWon float64
	for _, result := range results {
		totalSpent += cfg.Tickets.Price
		for _, ticket := range tickets {
			matchedMain, matchedEuro := lottery.Evaluate(ticket, result.RegularNumbers, result.BonusNumbers)
			key := lottery.PrizeKey(matchedMain, matchedEuro)
			if win, ok := result.PrizeDistribution[key]; ok {
				totalWon += win
				log.Infof("%s - Ticket %v matched %s and WON %.2f€",
					result.DrawDate.Format("2006-01-02"), ticket, key, win)
			} else {
				log.Debugf("%s - Ticket %v matched %s and WON nothing",
					result.DrawDate.Format("2006-01-02"), ticket, key)
			}
		}
	}

	log.Info("Final Summary:")
	log.Infof("Total spent on tickets: %.2f€", totalSpent)
	log.Infof("Total won: %.2f€", totalWon)
	log.Infof("Net loss: %.2f€", totalSpent-totalWon)
	return nil
}

func handleDividends(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Dividends.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}

	indices := dividend.Indices()
	if indexOpt, _ := cmd.Flags().GetString("index"); indexOpt != "" {
		indices, err = resolveIndices(indexOpt)
		if err != nil {
			return err
		}
	}

	log.Info("Starting dividend dataset build")

	client := newFetchClient(cfg, false, nil)
	return dividend.BuildAll(cmd.Context(), client, indices, cfg.Dividends.OutputDir)
}

// resolveIndices parses a comma-separated index list and rejects unknown names.
func resolveIndices(opt string) ([]string, error) {
	var indices []string
	var unknown []string
	for _, name := range strings.Split(opt, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := dividend.StocksByIndex(name); err != nil {
			unknown = append(unknown, name)
			continue
		}
		indices = append(indices, name)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown index names: %s", strings.Join(unknown, ", "))
	}
	return indices, nil
}
