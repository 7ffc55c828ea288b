package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-01-04")
	require.NoError(t, err)
	assert.Equal(t, 2022, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 4, d.Day())

	_, err = ParseDate("04.01.2022")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2022, time.March, 15, 18, 30, 12, 0, time.UTC)
	d := DateOnly(ts)
	assert.Equal(t, "2022-03-15", FormatDate(d))
	assert.Equal(t, 0, d.Hour())
}

func TestDateFromMillis(t *testing.T) {
	// 2022-01-01 00:00:00 UTC
	d := DateFromMillis(1640995200000)
	assert.Equal(t, "2022-01-01", FormatDate(d))
}
