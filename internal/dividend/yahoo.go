package dividend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bkastner/lottery-cli-go/internal/core"
	"github.com/bkastner/lottery-cli-go/internal/fetch"
)

// QuoteSummaryURL builds the quoteSummary request for a Yahoo ticker.
func QuoteSummaryURL(symbol string) string {
	return fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryProfile,calendarEvents",
		core.YahooFinanceURL, symbol)
}

// ChartURL builds the chart request carrying the full dividend history.
func ChartURL(symbol string) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?range=max&interval=3mo&events=div",
		core.YahooFinanceURL, symbol)
}

// rawValue is Yahoo's {"raw": ..., "fmt": ...} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				Symbol             string    `json:"symbol"`
				ShortName          string    `json:"shortName"`
				LongName           string    `json:"longName"`
				Currency           string    `json:"currency"`
				RegularMarketPrice *rawValue `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
				Country  string `json:"country"`
			} `json:"summaryProfile"`
			CalendarEvents *struct {
				ExDividendDate *rawValue `json:"exDividendDate"`
				Earnings       struct {
					EarningsDate    []rawValue `json:"earningsDate"`
					EarningsHigh    *rawValue  `json:"earningsHigh"`
					EarningsLow     *rawValue  `json:"earningsLow"`
					EarningsAverage *rawValue  `json:"earningsAverage"`
					RevenueHigh     *rawValue  `json:"revenueHigh"`
					RevenueLow      *rawValue  `json:"revenueLow"`
					RevenueAverage  *rawValue  `json:"revenueAverage"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchProfile builds the normalized dividend profile for one stock.
func FetchProfile(ctx context.Context, client *fetch.Client, index string, stock Stock) (*Profile, error) {
	symbol := ResolveSymbol(stock, index)

	var summary quoteSummaryResponse
	if err := client.GetJSON(ctx, QuoteSummaryURL(symbol), &summary, false); err != nil {
		return nil, err
	}
	if len(summary.QuoteSummary.Result) == 0 || summary.QuoteSummary.Result[0].Price == nil {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}
	result := summary.QuoteSummary.Result[0]

	profile := &Profile{
		Symbol:  result.Price.Symbol,
		Name:    stock.Name,
		Indices: []string{index},
		History: []HistoryItem{},
	}
	if profile.Name == "" {
		if result.Price.LongName != "" {
			profile.Name = result.Price.LongName
		} else {
			profile.Name = result.Price.ShortName
		}
	}
	if result.Price.RegularMarketPrice != nil {
		price := result.Price.RegularMarketPrice.Raw
		profile.CurrentPrice = &price
	}
	if result.Price.Currency != "" {
		currency := result.Price.Currency
		profile.Currency = &currency
	}
	if sp := result.SummaryProfile; sp != nil {
		profile.Sector = sp.Sector
		profile.Industry = sp.Industry
		profile.Country = sp.Country
	}
	if ce := result.CalendarEvents; ce != nil {
		if ce.ExDividendDate != nil {
			ex := time.Unix(int64(ce.ExDividendDate.Raw), 0).UTC()
			profile.ExpectedExDividendDates.ExDividendDate = &ex
		}
		for _, d := range ce.Earnings.EarningsDate {
			profile.ExpectedExDividendDates.EarningsDate = append(
				profile.ExpectedExDividendDates.EarningsDate, time.Unix(int64(d.Raw), 0).UTC())
		}
		setRaw := func(dst *float64, v *rawValue) {
			if v != nil {
				*dst = v.Raw
			}
		}
		setRaw(&profile.ExpectedExDividendDates.EarningsHigh, ce.Earnings.EarningsHigh)
		setRaw(&profile.ExpectedExDividendDates.EarningsLow, ce.Earnings.EarningsLow)
		setRaw(&profile.ExpectedExDividendDates.EarningsAverage, ce.Earnings.EarningsAverage)
		setRaw(&profile.ExpectedExDividendDates.RevenueHigh, ce.Earnings.RevenueHigh)
		setRaw(&profile.ExpectedExDividendDates.RevenueLow, ce.Earnings.RevenueLow)
		setRaw(&profile.ExpectedExDividendDates.RevenueAverage, ce.Earnings.RevenueAverage)
	}
	if profile.ExpectedExDividendDates.EarningsDate == nil {
		profile.ExpectedExDividendDates.EarningsDate = []time.Time{}
	}

	var chart chartResponse
	if err := client.GetJSON(ctx, ChartURL(symbol), &chart, false); err != nil {
		return nil, err
	}
	if len(chart.Chart.Result) > 0 {
		for _, div := range chart.Chart.Result[0].Events.Dividends {
			profile.History = append(profile.History, HistoryItem{
				Amount: div.Amount,
				Date:   time.Unix(div.Date, 0).UTC(),
			})
		}
	}
	sort.Slice(profile.History, func(i, j int) bool {
		return profile.History[i].Date.Before(profile.History[j].Date)
	})
	profile.DividendCount = len(profile.History)

	return profile, nil
}

// BuildIndex builds the dividend JSON for a single index and writes it to
// outFile. Per-symbol failures are logged and skipped. Returns the number
// of successfully processed symbols.
func BuildIndex(ctx context.Context, client *fetch.Client, index, outFile string) (int, error) {
	stocks, err := StocksByIndex(index)
	if err != nil {
		return 0, err
	}

	profiles := make(map[string]*Profile, len(stocks))
	for _, stock := range stocks {
		symbol := ResolveSymbol(stock, index)
		profile, err := FetchProfile(ctx, client, index, stock)
		if err != nil {
			log.WithField("symbol", symbol).Warnf("Error processing: %v", err)
			continue
		}
		profiles[symbol] = profile
		log.Infof("Processed %s", symbol)
	}

	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	tmpPath := outFile + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpPath, outFile); err != nil {
		return 0, err
	}

	return len(profiles), nil
}

// BuildAll builds the dividend dataset for every requested index under
// outDir, skipping indices whose output file already exists.
func BuildAll(ctx context.Context, client *fetch.Client, indices []string, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for _, index := range indices {
		log.Infof("Processing index: %s", index)

		outFile := filepath.Join(outDir, index+"_dividends.json")
		if _, err := os.Stat(outFile); err == nil {
			log.Infof("Output exists, skipping index: %s", outFile)
			continue
		}

		count, err := BuildIndex(ctx, client, index, outFile)
		if err != nil {
			return err
		}
		log.Infof("Wrote %d symbols to %s", count, outFile)
	}
	return nil
}
