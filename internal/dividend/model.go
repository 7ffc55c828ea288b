// Package dividend builds per-index dividend datasets from Yahoo Finance
// company data.
package dividend

import (
	"encoding/json"
	"time"
)

// HistoryItem is one paid dividend.
type HistoryItem struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// ExpectedDates holds the upcoming ex-dividend and earnings estimates for a
// company.
type ExpectedDates struct {
	ExDividendDate  *time.Time  `json:"exdividend_date"`
	EarningsDate    []time.Time `json:"earnings_date"`
	EarningsHigh    float64     `json:"earnings_high"`
	EarningsLow     float64     `json:"earnings_low"`
	EarningsAverage float64     `json:"earnings_average"`
	RevenueHigh     float64     `json:"revenue_high"`
	RevenueLow      float64     `json:"revenue_low"`
	RevenueAverage  float64     `json:"revenue_average"`
}

// Profile is the normalized dividend record for one company.
type Profile struct {
	Symbol                  string        `json:"symbol"`
	Name                    string        `json:"name"`
	Indices                 []string      `json:"indices"`
	Sector                  string        `json:"sector"`
	Industry                string        `json:"industry"`
	Country                 string        `json:"country"`
	CurrentPrice            *float64      `json:"current_price"`
	Currency                *string       `json:"currency"`
	DividendCount           int           `json:"dividend_count"`
	History                 []HistoryItem `json:"history"`
	ExpectedExDividendDates ExpectedDates `json:"expected_ex_dividend_dates"`
}

// ToJSON renders the profile with the 4-space indentation used by the
// per-index output files.
func (p *Profile) ToJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
