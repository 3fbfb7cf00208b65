package classify

import (
	"testing"

	"oandarates/internal/config"
	"oandarates/internal/domain"

	"github.com/stretchr/testify/require"
)

func testRules() config.Categories {
	return config.Categories{
		Currencies:  []string{"usd", "eur", "jpy", "gbp", "aud", "hkd", "sgd"},
		Metals:      []string{"xau", "xag", "xpd", "xpt"},
		Commodities: []string{"wtico_usd", "nat_gas_usd", "corn_usd", "brent_crude_oil"},
		Indices:     []string{"spx500_usd", "nas100_usd", "jp225_usd", "uk100_gbp"},
		Bonds:       []string{"us_10yr_tnote", "de10yb_eur", "usb02y_usd"},
		CurrencySuffixes: map[string]string{
			"_usd": "USD", "_eur": "EUR", "_gbp": "GBP", "_hkd": "HKD",
		},
	}
}

func TestClassify_Forex(t *testing.T) {
	c := NewClassifier(testRules())

	for _, instrument := range []string{"EUR_USD", "USD_JPY", "GBP_AUD", "eur/usd"} {
		require.Equal(t, domain.CategoryForex, c.Classify(instrument), instrument)
	}
}

func TestClassify_ForexRequiresExactlyTwoCurrencyTokens(t *testing.T) {
	c := NewClassifier(testRules())

	// three tokens never match forex even if all are currencies
	require.NotEqual(t, domain.CategoryForex, c.Classify("EUR_USD_JPY"))
	// one currency token is not enough
	require.NotEqual(t, domain.CategoryForex, c.Classify("ABC_USD"))
}

func TestClassify_Metals(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, domain.CategoryMetals, c.Classify("XAU_USD"))
	require.Equal(t, domain.CategoryMetals, c.Classify("xag/eur"))
	require.Equal(t, domain.CategoryMetals, c.Classify("XPT_USD"))
}

func TestClassify_PriorityOrder(t *testing.T) {
	c := NewClassifier(testRules())

	// SPX500_USD ends in a currency code but must classify as an index,
	// and WTICO_USD as a commodity, before any later rule applies.
	require.Equal(t, domain.CategoryCommodities, c.Classify("WTICO_USD"))
	require.Equal(t, domain.CategoryIndices, c.Classify("SPX500_USD"))
	require.Equal(t, domain.CategoryBonds, c.Classify("US_10YR_TNOTE"))
}

func TestClassify_CFDOnlyWhenNothingEarlierMatches(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, domain.CategoryCFD, c.Classify("SOME_THING_CFD"))
	// an index identifier with a _cfd suffix still classifies as index
	require.Equal(t, domain.CategoryIndices, c.Classify("SPX500_USD_CFD"))
}

func TestClassify_Other(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, domain.CategoryOther, c.Classify("UNKNOWN_XYZ"))
	require.Equal(t, domain.CategoryOther, c.Classify("RANDOM_TOKEN"))
	require.Equal(t, domain.CategoryOther, c.Classify(""))
}

func TestInferCurrency_TwoTokenCurrencyPrefix(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, "EUR", c.InferCurrency("EUR_USD", "USD"))
	require.Equal(t, "GBP", c.InferCurrency("gbp/jpy", "USD"))
}

func TestInferCurrency_SuffixTable(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, "USD", c.InferCurrency("SPX500_USD", "XXX"))
	require.Equal(t, "EUR", c.InferCurrency("DE40_EUR", "XXX"))
}

func TestInferCurrency_FallsBackToAPICurrency(t *testing.T) {
	c := NewClassifier(testRules())

	require.Equal(t, "CHF", c.InferCurrency("SOMETHING_ODD", "CHF"))
	require.Equal(t, "USD", c.InferCurrency("", "USD"))
}

func TestClassify_EndToEndFixture(t *testing.T) {
	c := NewClassifier(config.Categories{
		Currencies: []string{"usd", "eur"},
		Metals:     []string{"xau"},
		Indices:    []string{"spx500_usd"},
	})

	require.Equal(t, domain.CategoryForex, c.Classify("EUR_USD"))
	require.Equal(t, domain.CategoryMetals, c.Classify("XAU_USD"))
	require.Equal(t, domain.CategoryIndices, c.Classify("SPX500_USD"))
	require.Equal(t, domain.CategoryOther, c.Classify("RANDOM_TOKEN"))
}
