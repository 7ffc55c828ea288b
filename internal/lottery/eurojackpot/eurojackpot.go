// Package eurojackpot fetches and parses EuroJackpot draw results from the
// eurojackpot.de info service.
package eurojackpot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bkastner/lottery-cli-go/internal/core"
	"github.com/bkastner/lottery-cli-go/internal/fetch"
	"github.com/bkastner/lottery-cli-go/internal/lottery"
)

// Headers sent alongside the defaults; the info service checks the referer.
var Headers = map[string]string{
	"Referer": "https://www.eurojackpot.de/",
}

// DrawDates returns the EuroJackpot draw dates (Tuesdays and Fridays)
// within the lookback window ending at today.
func DrawDates(today time.Time, lookbackDays int) []time.Time {
	today = core.DateOnly(today)
	start := today.AddDate(0, 0, -lookbackDays)

	var dates []time.Time
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Tuesday || wd == time.Friday {
			dates = append(dates, d)
		}
	}
	return dates
}

// ResultURL builds the info-service URL for one draw date. The query order
// is fixed so that identical dates always map to identical cache keys.
func ResultURL(date time.Time) string {
	return fmt.Sprintf(
		"%s?client=jsn&gruppe=ZahlenUndQuoten&ewGewsum=ja&historie=ja&spielart=EJ&adg=ja&lang=de&datum=%s",
		core.EurojackpotInfoURL, core.FormatDate(date),
	)
}

// infoResponse mirrors the parts of the info-service payload we consume.
type infoResponse struct {
	Zahlen *struct {
		Hauptlotterie struct {
			Ziehungen []struct {
				Zahlen []interface{} `json:"zahlen"`
			} `json:"ziehungen"`
		} `json:"hauptlotterie"`
	} `json:"zahlen"`
	Auswertung *struct {
		Quoten struct {
			Hauptlotterie struct {
				Ziehungen []struct {
					Gewinnklassen []struct {
						Kurzbeschreibung string  `json:"kurzbeschreibung"`
						Quote            float64 `json:"quote"`
					} `json:"gewinnklassen"`
				} `json:"ziehungen"`
			} `json:"hauptlotterie"`
		} `json:"quoten"`
	} `json:"auswertung"`
}

// ParseDraw extracts the main numbers, euro numbers and prize distribution
// from one raw info-service payload. It returns a *lottery.ParseError when
// the required sections are absent; the caller skips that date and
// continues with the rest of the batch.
func ParseDraw(raw []byte) (main, euro []int, prizes map[string]float64, err error) {
	var resp infoResponse
	if jsonErr := json.Unmarshal(raw, &resp); jsonErr != nil {
		return nil, nil, nil, &lottery.ParseError{Reason: "payload is not valid JSON"}
	}
	if resp.Zahlen == nil || resp.Auswertung == nil {
		return nil, nil, nil, &lottery.ParseError{Reason: "missing zahlen or auswertung section"}
	}

	draws := resp.Zahlen.Hauptlotterie.Ziehungen
	if len(draws) < 2 {
		return nil, nil, nil, &lottery.ParseError{Reason: "missing draw number lists"}
	}

	main, err = toInts(draws[0].Zahlen)
	if err != nil {
		return nil, nil, nil, err
	}
	euro, err = toInts(draws[1].Zahlen)
	if err != nil {
		return nil, nil, nil, err
	}

	prizes = map[string]float64{}
	quoteDraws := resp.Auswertung.Quoten.Hauptlotterie.Ziehungen
	if len(quoteDraws) > 0 {
		for _, gk := range quoteDraws[0].Gewinnklassen {
			prizes[gk.Kurzbeschreibung] = gk.Quote
		}
	}

	return main, euro, prizes, nil
}

// toInts coerces the draw number list, which the service delivers as JSON
// strings ("7") in some responses and as numbers in others. A value that is
// neither fails the whole list; a partial number set must never be persisted.
func toInts(values []interface{}) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case string:
			i, err := strconv.Atoi(n)
			if err != nil {
				return nil, &lottery.ParseError{Reason: fmt.Sprintf("draw number %q is not numeric", n)}
			}
			out = append(out, i)
		case float64:
			out = append(out, int(n))
		default:
			return nil, &lottery.ParseError{Reason: fmt.Sprintf("draw number %v has unexpected type", v)}
		}
	}
	return out, nil
}

// FetchResults fetches and parses the draw results for every draw date in
// the lookback window. Failed queries and unparseable payloads are logged
// and skipped; one bad date never aborts the batch.
func FetchResults(ctx context.Context, client *fetch.Client, today time.Time, lookbackDays int) []lottery.DrawResult {
	dates := DrawDates(today, lookbackDays)
	log.Infof("Will fire %d API queries", len(dates))

	var results []lottery.DrawResult
	for i, d := range dates {
		log.Debugf("Query %d/%d: %s", i+1, len(dates), core.FormatDate(d))

		raw, err := client.Get(ctx, ResultURL(d), false)
		if err != nil {
			log.WithField("date", core.FormatDate(d)).Warnf("Failed to fetch data: %v", err)
			continue
		}

		main, euro, prizes, err := ParseDraw(raw)
		if err != nil {
			log.WithField("date", core.FormatDate(d)).Warnf("Skipping: %v", err)
			continue
		}

		results = append(results, lottery.NewDrawResult(d, main, euro, prizes))
	}
	return results
}
