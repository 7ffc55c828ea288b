package lotto

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkastner/lottery-cli-go/internal/core"
	"github.com/bkastner/lottery-cli-go/internal/fetch"
	"github.com/bkastner/lottery-cli-go/internal/lottery"
)

const drawFixture = `{
	"drawDate": 1640995200000,
	"drawNumbersCollection": [
		{"drawNumber": 7},
		{"drawNumber": 14},
		{"drawNumber": 21},
		{"drawNumber": 28},
		{"drawNumber": 35},
		{"drawNumber": 42}
	],
	"superNumber": 9,
	"oddsCollection": [
		{"winningClassDescription": {"winningClassShortName": "I"}, "odds": 50000000},
		{"winningClassDescription": {"winningClassShortName": "II"}, "odds": 5000000}
	]
}`

func seedDraw(store *fetch.MemoryStore, timestamp int64, payload string) {
	store.Seed(fmt.Sprintf("%s/draws/%d", core.LottoStatsBaseURL, timestamp), []byte(payload))
}

func TestFetchDraw(t *testing.T) {
	store := fetch.NewMemoryStore()
	seedDraw(store, 1640995200000, drawFixture)
	client := fetch.NewClient(fetch.Options{Store: store})

	result, err := FetchDraw(context.Background(), client, 1640995200000)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "2022-01-01", core.FormatDate(result.DrawDate))
	assert.Equal(t, []int{7, 14, 21, 28, 35, 42}, result.RegularNumbers)
	assert.Equal(t, []int{9}, result.BonusNumbers)
	assert.Equal(t, 50000000.0, result.PrizeDistribution["I"])
}

func TestFetchDrawListPayload(t *testing.T) {
	store := fetch.NewMemoryStore()
	seedDraw(store, 1640995200000, "["+drawFixture+"]")
	client := fetch.NewClient(fetch.Options{Store: store})

	result, err := FetchDraw(context.Background(), client, 1640995200000)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, []int{9}, result.BonusNumbers)
}

func TestFetchDrawEmptyPayload(t *testing.T) {
	store := fetch.NewMemoryStore()
	seedDraw(store, 123456789000, `null`)
	client := fetch.NewClient(fetch.Options{Store: store})

	result, err := FetchDraw(context.Background(), client, 123456789000)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestParseDrawOmitsAbsentBonusNumbers(t *testing.T) {
	// Neither superNumber nor extraNumber present: the bonus set stays
	// empty instead of holding a sentinel value.
	payload := `{
		"drawDate": 1640995200000,
		"drawNumbersCollection": [{"drawNumber": 1}, {"drawNumber": 2}]
	}`

	result, err := parseDraw([]byte(payload))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.BonusNumbers)
}

func TestParseDrawExtraNumber(t *testing.T) {
	payload := `{
		"drawDate": 1640995200000,
		"drawNumbersCollection": [{"drawNumber": 1}],
		"superNumber": 0,
		"extraNumber": 5
	}`

	result, err := parseDraw([]byte(payload))
	require.NoError(t, err)
	require.NotNil(t, result)
	// superNumber 0 is a real value, not "absent"
	assert.Equal(t, []int{0, 5}, result.BonusNumbers)
}

func TestFilterTimestamps(t *testing.T) {
	wednesday := time.Date(2022, time.January, 5, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2022, time.January, 8, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC)
	ancient := time.Date(1900, time.January, 6, 0, 0, 0, 0, time.UTC) // a Saturday

	existing := map[time.Time]struct{}{saturday: {}}

	filtered := FilterTimestamps([]int64{
		wednesday.UnixMilli(),
		saturday.UnixMilli(), // already persisted
		monday.UnixMilli(),   // not a draw day
		ancient.UnixMilli(),  // implausible year
	}, existing)

	assert.Equal(t, []int64{wednesday.UnixMilli()}, filtered)
}

func TestBackfillMergesNewDraws(t *testing.T) {
	today := time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2022, time.January, 5, 0, 0, 0, 0, time.UTC)

	store := fetch.NewMemoryStore()
	store.Seed(fmt.Sprintf("%s/history/1", core.LottoStatsBaseURL),
		[]byte(`{"years":[{"year":2021}]}`))
	dec31 := time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)
	store.Seed(fmt.Sprintf("%s/history/%d", core.LottoStatsBaseURL, dec31.UnixMilli()),
		[]byte(fmt.Sprintf(`{"days":[{"date":"%s"}]}`, core.FormatDate(wednesday))))
	seedDraw(store, wednesday.UnixMilli(), fmt.Sprintf(`{
		"drawDate": %d,
		"drawNumbersCollection": [{"drawNumber": 6}, {"drawNumber": 49}],
		"superNumber": 3
	}`, wednesday.UnixMilli()))
	client := fetch.NewClient(fetch.Options{Store: store})

	file := lottery.NewResultFile(filepath.Join(t.TempDir(), "lotto.json"))
	require.NoError(t, Backfill(context.Background(), client, file, today))

	results := file.Load()
	require.Len(t, results, 1)
	assert.Equal(t, "2022-01-05", core.FormatDate(results[0].DrawDate))
	assert.Equal(t, []int{6, 49}, results[0].RegularNumbers)
	assert.Equal(t, []int{3}, results[0].BonusNumbers)

	// A second run sees the persisted date and refetches nothing
	require.NoError(t, Backfill(context.Background(), client, file, today))
	assert.Len(t, file.Load(), 1)
}
