// Package core provides shared constants and date helpers for the lottery CLI.
package core

// Upstream API endpoints
const (
	EurojackpotInfoURL = "https://www.eurojackpot.de/wlinfo/WL_InfoService"
	LottoStatsBaseURL  = "https://www.lotto.de/api/stats/entities.lotto"
	YahooFinanceURL    = "https://query1.finance.yahoo.com"
)

// Date formats
const (
	DateFmt = "2006-01-02"
)

// Defaults for the configuration surface
const (
	DefaultCacheDir     = ".cache"
	DefaultLookbackDays = 3650
	DefaultTicketPrice  = 18.40
	DefaultTicketFile   = "tickets.json"
	DefaultWaitMinSecs  = 1.0
	DefaultWaitMaxSecs  = 3.0
)

// Version is the current CLI version.
const Version = "0.3.0"
