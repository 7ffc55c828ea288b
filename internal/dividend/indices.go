package dividend

import "fmt"

// Index names for the supported stock indices.
const (
	IndexDAX       = "DE_DAX"
	IndexTecDAX    = "DE_TECDAX"
	IndexDow       = "US_DOW"
	IndexNasdaq    = "US_NASDAQ"
	IndexEuroStoxx = "EU_50"
)

// usIndices are the indices where the primary symbol is used directly; the
// others need the Yahoo-specific listing symbol.
var usIndices = map[string]bool{
	IndexDow:    true,
	IndexNasdaq: true,
}

// Stock is one index constituent.
type Stock struct {
	Name        string
	Symbol      string
	YahooSymbol string // empty for US listings where Symbol is already the Yahoo ticker
}

var indexStocks = map[string][]Stock{
	IndexDAX: {
		{Name: "adidas AG", Symbol: "ADS", YahooSymbol: "ADS.DE"},
		{Name: "Allianz SE", Symbol: "ALV", YahooSymbol: "ALV.DE"},
		{Name: "BASF SE", Symbol: "BAS", YahooSymbol: "BAS.DE"},
		{Name: "Bayer AG", Symbol: "BAYN", YahooSymbol: "BAYN.DE"},
		{Name: "BMW AG", Symbol: "BMW", YahooSymbol: "BMW.DE"},
		{Name: "Deutsche Telekom AG", Symbol: "DTE", YahooSymbol: "DTE.DE"},
		{Name: "Infineon Technologies AG", Symbol: "IFX", YahooSymbol: "IFX.DE"},
		{Name: "Muenchener Rueckversicherungs-Gesellschaft AG", Symbol: "MUV2", YahooSymbol: "MUV2.DE"},
		{Name: "SAP SE", Symbol: "SAP", YahooSymbol: "SAP.DE"},
		{Name: "Siemens AG", Symbol: "SIE", YahooSymbol: "SIE.DE"},
	},
	IndexTecDAX: {
		{Name: "AIXTRON SE", Symbol: "AIXA", YahooSymbol: "AIXA.DE"},
		{Name: "Carl Zeiss Meditec AG", Symbol: "AFX", YahooSymbol: "AFX.DE"},
		{Name: "Nemetschek SE", Symbol: "NEM", YahooSymbol: "NEM.DE"},
		{Name: "Sartorius AG", Symbol: "SRT3", YahooSymbol: "SRT3.DE"},
		{Name: "Siltronic AG", Symbol: "WAF", YahooSymbol: "WAF.DE"},
		{Name: "United Internet AG", Symbol: "UTDI", YahooSymbol: "UTDI.DE"},
	},
	IndexDow: {
		{Name: "Apple Inc.", Symbol: "AAPL"},
		{Name: "Cisco Systems Inc.", Symbol: "CSCO"},
		{Name: "Coca-Cola Co.", Symbol: "KO"},
		{Name: "International Business Machines Corp.", Symbol: "IBM"},
		{Name: "Johnson & Johnson", Symbol: "JNJ"},
		{Name: "JPMorgan Chase & Co.", Symbol: "JPM"},
		{Name: "McDonald's Corp.", Symbol: "MCD"},
		{Name: "Microsoft Corp.", Symbol: "MSFT"},
		{Name: "Procter & Gamble Co.", Symbol: "PG"},
		{Name: "Visa Inc.", Symbol: "V"},
	},
	IndexNasdaq: {
		{Name: "Adobe Inc.", Symbol: "ADBE"},
		{Name: "Alphabet Inc.", Symbol: "GOOGL"},
		{Name: "Amazon.com Inc.", Symbol: "AMZN"},
		{Name: "Apple Inc.", Symbol: "AAPL"},
		{Name: "Intel Corp.", Symbol: "INTC"},
		{Name: "Microsoft Corp.", Symbol: "MSFT"},
		{Name: "NVIDIA Corp.", Symbol: "NVDA"},
	},
	IndexEuroStoxx: {
		{Name: "Air Liquide SA", Symbol: "AI", YahooSymbol: "AI.PA"},
		{Name: "ASML Holding NV", Symbol: "ASML", YahooSymbol: "ASML.AS"},
		{Name: "Iberdrola SA", Symbol: "IBE", YahooSymbol: "IBE.MC"},
		{Name: "LVMH Moet Hennessy Louis Vuitton SE", Symbol: "MC", YahooSymbol: "MC.PA"},
		{Name: "Sanofi SA", Symbol: "SAN", YahooSymbol: "SAN.PA"},
		{Name: "TotalEnergies SE", Symbol: "TTE", YahooSymbol: "TTE.PA"},
	},
}

// Indices returns the supported index names in their processing order.
func Indices() []string {
	return []string{IndexDAX, IndexTecDAX, IndexDow, IndexNasdaq, IndexEuroStoxx}
}

// StocksByIndex returns the constituents of a named index.
func StocksByIndex(index string) ([]Stock, error) {
	stocks, ok := indexStocks[index]
	if !ok {
		return nil, fmt.Errorf("unknown index name: %s", index)
	}
	return stocks, nil
}

// ResolveSymbol returns the Yahoo Finance ticker for a stock. US indices
// use the primary symbol directly; the others use the Yahoo-specific
// listing with the primary symbol as fallback.
func ResolveSymbol(stock Stock, index string) string {
	if usIndices[index] {
		return stock.Symbol
	}
	if stock.YahooSymbol != "" {
		return stock.YahooSymbol
	}
	return stock.Symbol
}
