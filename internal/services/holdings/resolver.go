package holdings

import (
	"time"

	"treasuryd/internal/models"
)

// Upstream sources disagree on field spellings, so resolution probes a
// fixed priority list for each concern.
var (
	recencyFields   = []string{"updatedAt", "lastUpdated", "createdAt"}
	priceFields     = []string{"ltc", "LTC", "Ltc", "value"}
	currencyFields  = []string{"currency", "quoteCurrency"}
	timestampFields = []string{"updatedAt", "lastUpdated", "internalUpdated"}
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolvePrice picks the most recent candidate document and extracts a
// normalized price from it. Returns nil when no candidate carries a
// recognized numeric price field; absence of a resolvable price is a
// normal state, not an error. Pure function, deterministic for a given
// input.
func ResolvePrice(candidates []models.PriceDocument) *models.LitecoinPrice {
	doc := SelectLatestCandidate(candidates)
	if doc == nil {
		return nil
	}

	var value *float64
	for _, field := range priceFields {
		if v, ok := doc[field]; ok {
			if f, ok := numericValue(v); ok {
				value = &f
				break
			}
		}
	}
	if value == nil {
		return nil
	}

	currency := "USD"
	for _, field := range currencyFields {
		if s, ok := doc[field].(string); ok && s != "" {
			currency = s
			break
		}
	}

	var lastUpdated *string
	for _, field := range timestampFields {
		if t, ok := documentTime(doc[field]); ok {
			s := t.UTC().Format(time.RFC3339)
			lastUpdated = &s
			break
		}
	}

	return &models.LitecoinPrice{
		Value:       value,
		Currency:    currency,
		LastUpdated: lastUpdated,
	}
}

// SelectLatestCandidate returns the candidate whose first-available
// recency field (updatedAt, then lastUpdated, then createdAt) is most
// recent. Ties and documents without any recency field keep source
// order. Returns nil for an empty input.
func SelectLatestCandidate(candidates []models.PriceDocument) models.PriceDocument {
	var best models.PriceDocument
	var bestTime time.Time

	for _, doc := range candidates {
		if doc == nil {
			continue
		}
		t := candidateRecency(doc)
		if best == nil || t.After(bestTime) {
			best = doc
			bestTime = t
		}
	}
	return best
}

// candidateRecency returns the first parseable recency field value, or
// the zero time when the document has none.
func candidateRecency(doc models.PriceDocument) time.Time {
	for _, field := range recencyFields {
		if v, ok := doc[field]; ok {
			if t, ok := documentTime(v); ok {
				return t
			}
		}
	}
	return time.Time{}
}

// documentTime coerces a document field into a time. The document store
// decodes datetimes natively; string timestamps from older sources are
// parsed against a small set of layouts.
func documentTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// numericValue coerces a document field into a float64, rejecting any
// non-numeric type. Decoders produce different integer widths depending
// on transport, so all of them are accepted.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
