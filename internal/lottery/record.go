// Package lottery holds the shared draw-result model, the merge engine and
// the JSON persistence for merged result collections.
package lottery

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bkastner/lottery-cli-go/internal/core"
)

// ParseError signals that an upstream payload is structurally missing
// required fields. It marks a record to skip, not a reason to abort a batch.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no valid data: %s", e.Reason)
}

// DrawResult is one lottery drawing identified by its calendar date.
//
// RegularNumbers and BonusNumbers are sets: membership matters, order and
// duplicates do not. They are kept normalized (ascending, unique) so that
// serialization is stable. BonusNumbers may be empty when a source provides
// none; absent bonus values are omitted rather than encoded as a sentinel.
type DrawResult struct {
	DrawDate          time.Time
	RegularNumbers    []int
	BonusNumbers      []int
	PrizeDistribution map[string]float64
}

// NewDrawResult builds a normalized DrawResult. The number slices are
// deduplicated and sorted; the date is truncated to midnight UTC.
func NewDrawResult(date time.Time, regular, bonus []int, prizes map[string]float64) DrawResult {
	if prizes == nil {
		prizes = map[string]float64{}
	}
	return DrawResult{
		DrawDate:          core.DateOnly(date),
		RegularNumbers:    NormalizeSet(regular),
		BonusNumbers:      NormalizeSet(bonus),
		PrizeDistribution: prizes,
	}
}

// NormalizeSet returns the unique values of nums in ascending order.
func NormalizeSet(nums []int) []int {
	seen := make(map[int]struct{}, len(nums))
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// drawResultJSON is the on-disk shape of a DrawResult. Number sets are
// rendered as ascending arrays; encoding/json writes map keys in ascending
// lexicographic order, which gives the stable prize_distribution layout.
type drawResultJSON struct {
	DrawDate          string             `json:"draw_date"`
	RegularNumbers    []int              `json:"regular_numbers"`
	BonusNumbers      []int              `json:"bonus_numbers"`
	PrizeDistribution map[string]float64 `json:"prize_distribution"`
}

// MarshalJSON renders the result in its stable serialized form.
func (r DrawResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(drawResultJSON{
		DrawDate:          core.FormatDate(r.DrawDate),
		RegularNumbers:    NormalizeSet(r.RegularNumbers),
		BonusNumbers:      NormalizeSet(r.BonusNumbers),
		PrizeDistribution: r.PrizeDistribution,
	})
}

// UnmarshalJSON reconstructs a DrawResult, rebuilding the number sets from
// the stored sequences.
func (r *DrawResult) UnmarshalJSON(data []byte) error {
	var raw drawResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := core.ParseDate(raw.DrawDate)
	if err != nil {
		return err
	}
	*r = NewDrawResult(date, raw.RegularNumbers, raw.BonusNumbers, raw.PrizeDistribution)
	return nil
}
