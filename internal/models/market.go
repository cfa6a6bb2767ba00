// Package models defines the domain model for ticker analysis:
// price history, reference data, signal scores, and provenance.
package models

import "time"

// AssetKind discriminates stocks from funds. It is carried explicitly on
// reference data so downstream scoring never has to guess from field shape.
type AssetKind string

const (
	AssetKindStock AssetKind = "stock"
	AssetKindFund  AssetKind = "fund"
)

// Provenance records where a piece of market data came from.
type Provenance string

const (
	// ProvenanceLive indicates data fetched from an upstream API.
	ProvenanceLive Provenance = "live"
	// ProvenancePartial indicates a record where only some fields are live.
	ProvenancePartial Provenance = "partial"
	// ProvenanceMock indicates a bundled fallback dataset.
	ProvenanceMock Provenance = "mock"
	// ProvenanceConfig indicates local reference data (thesis tiers, holdings).
	ProvenanceConfig Provenance = "config"
)

// PriceBar is a single daily OHLCV bar.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Overview contains descriptive and valuation reference data for a ticker.
// Stock fields use zero as "not available" (negative or missing metrics are
// skipped by scoring). Fund fields are only meaningful when Kind is
// AssetKindFund.
type Overview struct {
	Ticker   string    `json:"ticker"`
	Name     string    `json:"name"`
	Sector   string    `json:"sector"`
	Industry string    `json:"industry,omitempty"`
	Kind     AssetKind `json:"kind"`

	// Stock valuation metrics
	MarketCap      float64 `json:"market_cap,omitempty"`
	PERatio        float64 `json:"pe_ratio,omitempty"`
	PSRatio        float64 `json:"ps_ratio,omitempty"`
	PFCFRatio      float64 `json:"pfcf_ratio,omitempty"`
	DividendYield  float64 `json:"dividend_yield,omitempty"`
	EPS            float64 `json:"eps,omitempty"`
	RevenueGrowth  float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth float64 `json:"earnings_growth,omitempty"`

	// Fund efficiency metrics
	ExpenseRatio    float64 `json:"expense_ratio,omitempty"`    // percent per year
	AUM             float64 `json:"aum,omitempty"`              // dollars
	PremiumDiscount float64 `json:"premium_discount,omitempty"` // fraction of NAV
	TrackingError   float64 `json:"tracking_error,omitempty"`   // percent
	YTDReturn       float64 `json:"ytd_return,omitempty"`       // percent
	OneYearReturn   float64 `json:"one_year_return,omitempty"`  // percent
	HoldingsCount   int     `json:"holdings_count,omitempty"`
}

// EarningsSurprise is one quarter of reported vs estimated earnings.
type EarningsSurprise struct {
	Quarter  string  `json:"quarter"`
	Actual   float64 `json:"actual"`
	Estimate float64 `json:"estimate"`
}

// AnalystRatings holds the analyst consensus breakdown for a stock.
type AnalystRatings struct {
	Buy  int `json:"buy"`
	Hold int `json:"hold"`
	Sell int `json:"sell"`
}

// AnalystSnapshot contains sentiment reference data. Stocks populate the
// ratings/target/surprise fields, funds populate the rating/rank/flow fields.
type AnalystSnapshot struct {
	// Stock fields
	Ratings           AnalystRatings     `json:"ratings,omitempty"`
	CurrentPrice      float64            `json:"current_price,omitempty"`
	MedianTarget      float64            `json:"median_target,omitempty"`
	EarningsSurprises []EarningsSurprise `json:"earnings_surprises,omitempty"`

	// Fund fields
	MorningstarRating float64 `json:"morningstar_rating,omitempty"` // 1-5 stars
	CategoryRank      float64 `json:"category_rank,omitempty"`      // percentile, lower is better
	InflowsOutflows   float64 `json:"inflows_outflows,omitempty"`   // 1y net flows, millions
}

// InsiderTransaction is a single insider buy or sell.
type InsiderTransaction struct {
	Type  string  `json:"type"` // "buy" or "sell"
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// OwnershipActivity contains ownership reference data. Stocks populate the
// insider/institutional fields, funds populate the flow fields. Institutional
// ownership pointers are nil when the upstream feed does not supply them;
// scoring skips those components rather than treating them as zero.
type OwnershipActivity struct {
	// Stock fields
	InsiderTransactions          []InsiderTransaction `json:"insider_transactions,omitempty"`
	InstitutionalOwnership       *float64             `json:"institutional_ownership,omitempty"`       // fraction 0-1
	InstitutionalOwnershipPrior  *float64             `json:"institutional_ownership_prior,omitempty"` // fraction 0-1

	// Fund fields
	NetFlows30D             float64   `json:"net_flows_30d,omitempty"` // dollars
	NetFlows90D             float64   `json:"net_flows_90d,omitempty"` // dollars
	CreationRedemptionRatio float64   `json:"creation_redemption_ratio,omitempty"`
	TopHoldings             []Holding `json:"top_holdings,omitempty"`
}

// RiskProfile contains risk reference data. Every field is optional: a nil
// pointer means the metric is unknown and its component is skipped, never
// scored as zero.
type RiskProfile struct {
	Beta                 *float64 `json:"beta,omitempty"`
	HistoricalVolatility *float64 `json:"historical_volatility,omitempty"` // annualized fraction
	MaxDrawdown          *float64 `json:"max_drawdown,omitempty"`          // negative fraction, peak to trough
	DebtToEquity         *float64 `json:"debt_to_equity,omitempty"`
}

// Holding is a single position within a fund.
type Holding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name,omitempty"`
	Weight float64 `json:"weight"` // percent of fund
}

// FundHoldings is the holdings list for one fund.
type FundHoldings struct {
	Ticker   string    `json:"ticker"`
	Name     string    `json:"name"`
	Holdings []Holding `json:"holdings"`
}
