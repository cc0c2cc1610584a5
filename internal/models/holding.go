package models

// Holding is a record of LTC quantity and USD value attributed to one
// company or ETF. Holdings are maintained out-of-band in the document
// store and are read-only from this service's perspective.
type Holding struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Ticker             string   `json:"ticker"`
	LTCHoldings        float64  `json:"ltcHoldings"`
	ValueUSD           float64  `json:"valueUSD"`
	LastUpdated        string   `json:"lastUpdated"`
	PercentageOfSupply *float64 `json:"percentageOfSupply,omitempty"`
}

// LitecoinPrice is the resolved latest price for the Litecoin asset code.
// Value is nil when no candidate document exposed a recognized numeric
// price field; that is a normal, representable state, not a failure.
type LitecoinPrice struct {
	Value       *float64 `json:"value"`
	Currency    string   `json:"currency,omitempty"`
	LastUpdated *string  `json:"lastUpdated,omitempty"`
}

// DebugInfo is the diagnostic payload attached to degraded snapshots.
// It is advisory only and never changes response status.
type DebugInfo struct {
	Message  string `json:"message"`
	Hint     string `json:"hint"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
	CodeName string `json:"codeName,omitempty"`
}

// DashboardSnapshot is the full aggregated response returned by one call
// to the holdings endpoint.
type DashboardSnapshot struct {
	Companies []Holding      `json:"companies"`
	ETFs      []Holding      `json:"etfs"`
	LTCPrice  *LitecoinPrice `json:"ltcPrice"`
	Debug     *DebugInfo     `json:"_debug,omitempty"`
}

// PriceDocument is a schemaless price candidate document for one asset
// code, as stored in the document store. Field names and types vary by
// upstream source, so resolution probes a fixed list of spellings.
type PriceDocument map[string]any
