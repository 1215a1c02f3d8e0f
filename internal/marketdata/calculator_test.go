package marketdata

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

const sampleFeed = `Asset class,Asset,Current price,Last month price
Stocks,PETR4,38.50,35.00
Stocks,VALE3,61.20,68.00
Stocks,MRFG3,8.36,10.00
`

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParseFeed(t *testing.T) {
	t.Run("parses well formed rows", func(t *testing.T) {
		prices := ParseFeed(strings.NewReader(sampleFeed))

		require.Len(t, prices, 3)
		assert.Equal(t, "PETR4", prices[0].Ticker)
		assert.Equal(t, "Stocks", prices[0].AssetClass)
		assert.True(t, dec(t, "38.50").Equal(prices[0].CurrentPrice))
		assert.True(t, dec(t, "35.00").Equal(prices[0].LastMonthPrice))
	})

	t.Run("empty feed yields empty result", func(t *testing.T) {
		assert.Empty(t, ParseFeed(strings.NewReader("")))
	})

	t.Run("header only feed yields empty result", func(t *testing.T) {
		feed := "Asset class,Asset,Current price,Last month price\n"
		assert.Empty(t, ParseFeed(strings.NewReader(feed)))
	})

	t.Run("malformed rows are skipped individually", func(t *testing.T) {
		feed := "Asset class,Asset,Current price,Last month price\n" +
			"Stocks,PETR4,38.50,35.00\n" +
			"Stocks,,10.00,11.00\n" +
			"Stocks,BAD3,not-a-number,11.00\n" +
			"Stocks,BAD4,10.00,also-bad\n" +
			"Stocks,VALE3,61.20,68.00\n"

		prices := ParseFeed(strings.NewReader(feed))

		require.Len(t, prices, 2)
		assert.Equal(t, "PETR4", prices[0].Ticker)
		assert.Equal(t, "VALE3", prices[1].Ticker)
	})

	t.Run("missing price cells default to zero", func(t *testing.T) {
		feed := "Asset class,Asset,Current price,Last month price\n" +
			"Stocks,NEW3,,\n"

		prices := ParseFeed(strings.NewReader(feed))

		require.Len(t, prices, 1)
		assert.True(t, prices[0].CurrentPrice.IsZero())
		assert.True(t, prices[0].LastMonthPrice.IsZero())
	})
}

func TestCalculateReturns(t *testing.T) {
	t.Run("return formula rounds to two decimals", func(t *testing.T) {
		prices := []models.MarketPrice{
			{Ticker: "AAA3", CurrentPrice: dec(t, "89.6"), LastMonthPrice: dec(t, "100")},
		}
		assets := []models.Asset{
			{Ticker: "AAA3", Value: dec(t, "10000"), AssetClass: models.AssetClassStocks},
		}

		returns := CalculateReturns(prices, assets)

		require.Len(t, returns, 1)
		assert.True(t, dec(t, "-10.4").Equal(returns[0].MonthlyReturnPct), "got %s", returns[0].MonthlyReturnPct)
		assert.True(t, dec(t, "10000").Equal(returns[0].PositionValue))
	})

	t.Run("zero last month price reports zero return", func(t *testing.T) {
		prices := []models.MarketPrice{
			{Ticker: "IPO3", CurrentPrice: dec(t, "12.50"), LastMonthPrice: decimal.Zero},
		}
		assets := []models.Asset{
			{Ticker: "IPO3", Value: dec(t, "5000"), AssetClass: models.AssetClassStocks},
		}

		returns := CalculateReturns(prices, assets)

		require.Len(t, returns, 1)
		assert.True(t, returns[0].MonthlyReturnPct.IsZero())
	})

	t.Run("unmatched holdings produce no record", func(t *testing.T) {
		prices := ParseFeed(strings.NewReader(sampleFeed))
		assets := []models.Asset{
			{Ticker: "PETR4", Value: dec(t, "10000"), AssetClass: models.AssetClassStocks},
			{Ticker: "UNKNOWN3", Value: dec(t, "5000"), AssetClass: models.AssetClassStocks},
		}

		returns := CalculateReturns(prices, assets)

		require.Len(t, returns, 1)
		assert.Equal(t, "PETR4", returns[0].Ticker)
	})

	t.Run("ticker match is case sensitive", func(t *testing.T) {
		prices := []models.MarketPrice{
			{Ticker: "PETR4", CurrentPrice: dec(t, "38.50"), LastMonthPrice: dec(t, "35.00")},
		}
		assets := []models.Asset{
			{Ticker: "petr4", Value: dec(t, "10000"), AssetClass: models.AssetClassStocks},
		}

		assert.Empty(t, CalculateReturns(prices, assets))
	})

	t.Run("results follow holdings order", func(t *testing.T) {
		prices := ParseFeed(strings.NewReader(sampleFeed))
		assets := []models.Asset{
			{Ticker: "MRFG3", Value: dec(t, "3000"), AssetClass: models.AssetClassStocks},
			{Ticker: "PETR4", Value: dec(t, "10000"), AssetClass: models.AssetClassStocks},
			{Ticker: "VALE3", Value: dec(t, "8000"), AssetClass: models.AssetClassStocks},
		}

		returns := CalculateReturns(prices, assets)

		require.Len(t, returns, 3)
		assert.Equal(t, "MRFG3", returns[0].Ticker)
		assert.Equal(t, "PETR4", returns[1].Ticker)
		assert.Equal(t, "VALE3", returns[2].Ticker)
		assert.True(t, dec(t, "-16.4").Equal(returns[0].MonthlyReturnPct), "got %s", returns[0].MonthlyReturnPct)
		assert.True(t, dec(t, "10").Equal(returns[1].MonthlyReturnPct), "got %s", returns[1].MonthlyReturnPct)
		assert.True(t, dec(t, "-10").Equal(returns[2].MonthlyReturnPct), "got %s", returns[2].MonthlyReturnPct)
	})
}
