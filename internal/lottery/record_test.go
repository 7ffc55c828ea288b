package lottery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrawResultNormalizesSets(t *testing.T) {
	r := NewDrawResult(date("2022-01-01"), []int{35, 7, 14, 7, 28, 21}, []int{9, 3, 9}, nil)

	assert.Equal(t, []int{7, 14, 21, 28, 35}, r.RegularNumbers)
	assert.Equal(t, []int{3, 9}, r.BonusNumbers)
	assert.NotNil(t, r.PrizeDistribution)
}

func TestDrawResultMarshalStableOrdering(t *testing.T) {
	r := NewDrawResult(date("2022-01-01"),
		[]int{35, 7, 14},
		[]int{9, 3},
		map[string]float64{"5 + 2": 90000000, "2 + 1": 8.5, "5 + 1": 500000},
	)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	// Sets as ascending arrays, prize keys in ascending lexicographic order
	assert.JSONEq(t, `{
		"draw_date": "2022-01-01",
		"regular_numbers": [7, 14, 35],
		"bonus_numbers": [3, 9],
		"prize_distribution": {"2 + 1": 8.5, "5 + 1": 500000, "5 + 2": 90000000}
	}`, string(data))

	want := `{"draw_date":"2022-01-01","regular_numbers":[7,14,35],"bonus_numbers":[3,9],` +
		`"prize_distribution":{"2 + 1":8.5,"5 + 1":500000,"5 + 2":90000000}}`
	assert.Equal(t, want, string(data))

	// Re-serialization is byte-identical
	again, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDrawResultUnmarshalRebuildsSets(t *testing.T) {
	raw := `{
		"draw_date": "2022-01-04",
		"regular_numbers": [6, 4, 5, 4],
		"bonus_numbers": [],
		"prize_distribution": {"II": 50}
	}`

	var r DrawResult
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "2022-01-04", r.DrawDate.Format("2006-01-02"))
	assert.Equal(t, []int{4, 5, 6}, r.RegularNumbers)
	assert.Empty(t, r.BonusNumbers)
	assert.Equal(t, 50.0, r.PrizeDistribution["II"])
}

func TestDrawResultUnmarshalRejectsBadDate(t *testing.T) {
	var r DrawResult
	err := json.Unmarshal([]byte(`{"draw_date":"not-a-date"}`), &r)
	assert.Error(t, err)
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Reason: "missing zahlen"}
	assert.Contains(t, err.Error(), "missing zahlen")
}
