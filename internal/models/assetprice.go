package models

// AssetPrice is one live-priced asset row from the relational store.
// Name is the unique key; a later event for the same name fully
// overwrites the earlier one.
type AssetPrice struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Growth float64 `json:"growth"`
}

// Price event kinds, matching the relational store's change feed.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// PriceEventKey identifies the row an event applies to.
type PriceEventKey struct {
	Name string `json:"name"`
}

// PriceEvent is one change notification for the asset_price table.
// New is set for INSERT/UPDATE, Old for DELETE.
type PriceEvent struct {
	EventType string         `json:"eventType"`
	New       *AssetPrice    `json:"new,omitempty"`
	Old       *PriceEventKey `json:"old,omitempty"`
}

// PortfolioPosition is one asset position held by a user.
type PortfolioPosition struct {
	UserID   string  `json:"userId"`
	Asset    string  `json:"asset"`
	Quantity float64 `json:"quantity"`
}

// PortfolioBalance is a position valued at the current asset price.
type PortfolioBalance struct {
	Asset    string  `json:"asset"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Balance  float64 `json:"balance"`
}
