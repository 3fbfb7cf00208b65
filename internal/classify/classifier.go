// Package classify maps instrument identifiers to display categories and
// settlement currencies using the configured keyword tables.
package classify

import (
	"slices"
	"strings"

	"oandarates/internal/config"
	"oandarates/internal/domain"
)

// Classifier is a pure lookup over immutable keyword tables. Safe for
// concurrent use.
type Classifier struct {
	currencies  map[string]struct{}
	metals      []string
	commodities []string
	indices     []string
	bonds       []string
	suffixes    map[string]string
}

func NewClassifier(cfg config.Categories) *Classifier {
	currencies := make(map[string]struct{}, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		currencies[normalize(c)] = struct{}{}
	}
	suffixes := make(map[string]string, len(cfg.CurrencySuffixes))
	for suffix, code := range cfg.CurrencySuffixes {
		suffixes[normalize(suffix)] = strings.ToUpper(code)
	}
	return &Classifier{
		currencies:  currencies,
		metals:      normalizeAll(cfg.Metals),
		commodities: normalizeAll(cfg.Commodities),
		indices:     normalizeAll(cfg.Indices),
		bonds:       normalizeAll(cfg.Bonds),
		suffixes:    suffixes,
	}
}

// Classify tests categories in fixed priority order; the first match wins.
// The order matters: several commodity and index identifiers would otherwise
// read as two stacked currency codes.
func (c *Classifier) Classify(instrument string) domain.Category {
	id := normalize(instrument)
	parts := strings.Split(id, "_")

	if len(parts) == 2 {
		_, baseOK := c.currencies[parts[0]]
		_, quoteOK := c.currencies[parts[1]]
		if baseOK && quoteOK {
			return domain.CategoryForex
		}
	}

	for _, m := range c.metals {
		if slices.Contains(parts, m) {
			return domain.CategoryMetals
		}
	}
	if containsAny(id, c.commodities) {
		return domain.CategoryCommodities
	}
	if containsAny(id, c.indices) {
		return domain.CategoryIndices
	}
	if containsAny(id, c.bonds) {
		return domain.CategoryBonds
	}
	if strings.Contains(id, "_cfd") {
		return domain.CategoryCFD
	}
	return domain.CategoryOther
}

// InferCurrency picks the settlement currency for an instrument. A two-token
// identifier whose first token is a currency code wins; otherwise the suffix
// table is scanned; otherwise the API-provided currency is trusted. Never
// fails: unknown instruments fall through to apiCurrency.
func (c *Classifier) InferCurrency(instrument string, apiCurrency string) string {
	id := normalize(instrument)
	parts := strings.Split(id, "_")

	if len(parts) == 2 {
		if _, ok := c.currencies[parts[0]]; ok {
			return strings.ToUpper(parts[0])
		}
	}
	for suffix, code := range c.suffixes {
		if strings.HasSuffix(id, suffix) {
			return code
		}
	}
	return apiCurrency
}

func normalize(instrument string) string {
	return strings.ToLower(strings.ReplaceAll(instrument, "/", "_"))
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, normalize(k))
	}
	return out
}

func containsAny(id string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(id, k) {
			return true
		}
	}
	return false
}
