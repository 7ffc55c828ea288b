// Package lotto fetches and parses Lotto 6aus49 draw results from the
// lotto.de stats API.
package lotto

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bkastner/lottery-cli-go/internal/core"
	"github.com/bkastner/lottery-cli-go/internal/fetch"
	"github.com/bkastner/lottery-cli-go/internal/lottery"
)

// flushBatchSize is how many accumulated records trigger an intermediate
// export during a backfill, so an interrupted run keeps its progress.
const flushBatchSize = 50

// AvailableYears returns the draw years known to the stats API.
func AvailableYears(ctx context.Context, client *fetch.Client) ([]int, error) {
	var payload struct {
		Years []struct {
			Year int `json:"year"`
		} `json:"years"`
	}
	url := fmt.Sprintf("%s/history/1", core.LottoStatsBaseURL)
	if err := client.GetJSON(ctx, url, &payload, false); err != nil {
		return nil, err
	}

	years := make([]int, 0, len(payload.Years))
	for _, y := range payload.Years {
		years = append(years, y.Year)
	}
	return years, nil
}

// YearTimestamps returns the draw-day timestamps (unix millis) for a year.
// The current year is still accumulating draws, so its query bypasses the
// cache to avoid serving a stale, incomplete day list.
func YearTimestamps(ctx context.Context, client *fetch.Client, year int, today time.Time) ([]int64, error) {
	dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	skipCache := year == today.Year()

	var payload struct {
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
	}
	url := fmt.Sprintf("%s/history/%d", core.LottoStatsBaseURL, dec31.UnixMilli())
	if err := client.GetJSON(ctx, url, &payload, skipCache); err != nil {
		return nil, err
	}

	timestamps := make([]int64, 0, len(payload.Days))
	for _, day := range payload.Days {
		d, err := core.ParseDate(day.Date)
		if err != nil {
			log.Debugf("Skipping malformed draw day %q: %v", day.Date, err)
			continue
		}
		timestamps = append(timestamps, d.UnixMilli())
	}
	return timestamps, nil
}

// drawPayload mirrors the parts of a draws/<ts> response we consume.
type drawPayload struct {
	DrawDate              int64 `json:"drawDate"`
	DrawNumbersCollection []struct {
		DrawNumber int `json:"drawNumber"`
	} `json:"drawNumbersCollection"`
	SuperNumber    *int `json:"superNumber"`
	ExtraNumber    *int `json:"extraNumber"`
	OddsCollection []struct {
		WinningClassDescription struct {
			WinningClassShortName string `json:"winningClassShortName"`
		} `json:"winningClassDescription"`
		Odds float64 `json:"odds"`
	} `json:"oddsCollection"`
}

// FetchDraw fetches one draw by its millisecond timestamp. Returns nil
// without error when the API has no data for the timestamp.
//
// Missing super/extra numbers are simply omitted from the bonus set; no
// sentinel value is folded in.
func FetchDraw(ctx context.Context, client *fetch.Client, timestamp int64) (*lottery.DrawResult, error) {
	url := fmt.Sprintf("%s/draws/%d", core.LottoStatsBaseURL, timestamp)
	raw, err := client.Get(ctx, url, false)
	if err != nil {
		return nil, err
	}
	return parseDraw(raw)
}

// parseDraw decodes a draw payload, which the API delivers either as one
// object or as a single-element array.
func parseDraw(raw []byte) (*lottery.DrawResult, error) {
	var data drawPayload

	var asList []drawPayload
	if err := json.Unmarshal(raw, &asList); err == nil {
		if len(asList) == 0 {
			return nil, nil
		}
		data = asList[0]
	} else if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &lottery.ParseError{Reason: "payload is not valid JSON"}
	}

	if data.DrawDate == 0 {
		return nil, nil
	}
	if len(data.DrawNumbersCollection) == 0 {
		return nil, &lottery.ParseError{Reason: "missing drawNumbersCollection"}
	}

	regular := make([]int, 0, len(data.DrawNumbersCollection))
	for _, item := range data.DrawNumbersCollection {
		regular = append(regular, item.DrawNumber)
	}

	var bonus []int
	if data.SuperNumber != nil {
		bonus = append(bonus, *data.SuperNumber)
	}
	if data.ExtraNumber != nil {
		bonus = append(bonus, *data.ExtraNumber)
	}

	prizes := map[string]float64{}
	for _, odds := range data.OddsCollection {
		if name := odds.WinningClassDescription.WinningClassShortName; name != "" {
			prizes[name] = odds.Odds
		}
	}

	result := lottery.NewDrawResult(core.DateFromMillis(data.DrawDate), regular, bonus, prizes)
	return &result, nil
}

// FilterTimestamps drops timestamps that cannot be valid 6aus49 draws:
// implausible years, weekdays other than the draw days (Wednesday,
// Saturday, plus Sunday for historic draws), and dates already persisted.
func FilterTimestamps(timestamps []int64, existing map[time.Time]struct{}) []int64 {
	filtered := make([]int64, 0, len(timestamps))
	dropped := 0

	for _, ts := range timestamps {
		d := core.DateFromMillis(ts)
		if d.Year() < 1950 || d.Year() > 2100 {
			dropped++
			continue
		}
		switch d.Weekday() {
		case time.Wednesday, time.Saturday, time.Sunday:
		default:
			dropped++
			continue
		}
		if _, ok := existing[d]; ok {
			continue
		}
		filtered = append(filtered, ts)
	}

	if dropped > 0 {
		log.Infof("Filtered out %d invalid/out-of-range timestamps", dropped)
	}
	return filtered
}

// Backfill fetches every draw not yet present in file and merges the
// results in, flushing every flushBatchSize records so partial progress
// survives an interrupted run.
func Backfill(ctx context.Context, client *fetch.Client, file *lottery.ResultFile, today time.Time) error {
	existing := file.ExistingDates()
	if len(existing) > 0 {
		log.Infof("Found %d existing dates", len(existing))
	}

	years, err := AvailableYears(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to list available years: %w", err)
	}

	var all []int64
	for _, year := range years {
		timestamps, err := YearTimestamps(ctx, client, year, today)
		if err != nil {
			log.WithField("year", year).Warnf("Failed to fetch draw days: %v", err)
			continue
		}
		all = append(all, timestamps...)
	}

	pending := FilterTimestamps(all, existing)
	log.Infof("Total timestamps: %d, New: %d", len(all), len(pending))
	log.Infof("Will fire %d API queries", len(pending))

	processed := 0
	var batch []lottery.DrawResult
	for i, ts := range pending {
		result, err := FetchDraw(ctx, client, ts)
		if err != nil {
			log.WithField("timestamp", ts).Warnf("Failed to fetch draw: %v", err)
			continue
		}
		if result == nil {
			continue
		}

		log.Debugf("Query %d/%d: %d -> %s", i+1, len(pending), ts, core.FormatDate(result.DrawDate))
		batch = append(batch, *result)
		processed++

		if len(batch) >= flushBatchSize {
			if _, err := file.Export(batch); err != nil {
				return err
			}
			batch = nil
		}
	}

	if len(batch) > 0 {
		if _, err := file.Export(batch); err != nil {
			return err
		}
	}

	log.Infof("Successfully processed %d new draws", processed)
	return nil
}
