// Package marketdata parses the profitability price feed and derives
// monthly returns for portfolio holdings.
package marketdata

import (
	"encoding/csv"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// Feed column headers
const (
	colAssetClass     = "Asset class"
	colTicker         = "Asset"
	colCurrentPrice   = "Current price"
	colLastMonthPrice = "Last month price"
)

var oneHundred = decimal.NewFromInt(100)

// ParseFeed reads the profitability CSV and returns one MarketPrice per
// usable row. Rows with an empty ticker or a non-numeric price are skipped
// individually; an empty or unreadable feed yields an empty slice, never
// an error.
func ParseFeed(r io.Reader) []models.MarketPrice {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var prices []models.MarketPrice
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("skipping invalid CSV row: %v", err)
			continue
		}

		ticker := field(record, cols, colTicker)
		if ticker == "" {
			continue
		}

		current, err := parsePrice(field(record, cols, colCurrentPrice))
		if err != nil {
			log.Printf("skipping row for %s: invalid current price: %v", ticker, err)
			continue
		}
		last, err := parsePrice(field(record, cols, colLastMonthPrice))
		if err != nil {
			log.Printf("skipping row for %s: invalid last month price: %v", ticker, err)
			continue
		}

		prices = append(prices, models.MarketPrice{
			AssetClass:     field(record, cols, colAssetClass),
			Ticker:         ticker,
			CurrentPrice:   current,
			LastMonthPrice: last,
		})
	}

	return prices
}

// CalculateReturns cross-references the price feed with portfolio holdings
// and produces one CalculatedReturn per holding that has a price match, in
// holdings order. Holdings without a match produce no record. A zero last
// month price yields a 0.0 return by convention (no signal, not flat
// performance).
func CalculateReturns(prices []models.MarketPrice, assets []models.Asset) []models.CalculatedReturn {
	lookup := make(map[string]models.MarketPrice, len(prices))
	for _, mp := range prices {
		lookup[mp.Ticker] = mp
	}

	var returns []models.CalculatedReturn
	for _, asset := range assets {
		mp, ok := lookup[asset.Ticker]
		if !ok {
			continue
		}

		monthlyReturn := decimal.Zero
		if !mp.LastMonthPrice.IsZero() {
			monthlyReturn = mp.CurrentPrice.Sub(mp.LastMonthPrice).
				Div(mp.LastMonthPrice).
				Mul(oneHundred).
				Round(2)
		}

		returns = append(returns, models.CalculatedReturn{
			Ticker:           asset.Ticker,
			CurrentPrice:     mp.CurrentPrice,
			LastMonthPrice:   mp.LastMonthPrice,
			MonthlyReturnPct: monthlyReturn,
			PositionValue:    asset.Value,
		})
	}

	return returns
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
