package present

import (
	"fmt"
	"strings"

	"oandarates/internal/classify"
	"oandarates/internal/domain"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Row is one instrument formatted for display: rates scaled from fractions
// to percentages, the category derived, the currency inferred.
type Row struct {
	Instrument  string `json:"instrument"`
	Category    string `json:"category"`
	Currency    string `json:"currency"`
	Days        string `json:"days"`
	LongRate    string `json:"long_rate"`
	ShortRate   string `json:"short_rate"`
	LongCharge  string `json:"long_charge"`
	ShortCharge string `json:"short_charge"`
	Units       string `json:"units"`
}

func buildRows(doc *domain.RatesDocument, classifier *classify.Classifier, category string, filter string) []Row {
	if doc == nil {
		return []Row{}
	}

	filter = strings.ToLower(filter)
	rows := make([]Row, 0, len(doc.FinancingRates))
	for _, record := range doc.FinancingRates {
		recordCategory := classifier.Classify(record.Instrument)
		if category != "" && category != CategoryAll && string(recordCategory) != category {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(record.Instrument), filter) {
			continue
		}
		rows = append(rows, Row{
			Instrument:  record.Instrument,
			Category:    recordCategory.String(),
			Currency:    classifier.InferCurrency(record.Instrument, record.Currency),
			Days:        record.Days.String(),
			LongRate:    formatRate(record.LongRatePercent()),
			ShortRate:   formatRate(record.ShortRatePercent()),
			LongCharge:  record.LongCharge.String(),
			ShortCharge: record.ShortCharge.String(),
			Units:       record.Units.String(),
		})
	}
	return rows
}

func formatRate(pct float64, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f%%", pct)
}
