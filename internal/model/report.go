// Package model defines the report records produced by the analysis pipeline.
package model

import "time"

// ReportKind discriminates the two report variants.
type ReportKind string

const (
	KindPhoto ReportKind = "photo"
	KindBid   ReportKind = "bid"
)

// Confidence is an ordered tier: low < medium < high.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Verdict is the model-asserted qualitative market position. It is authored
// by the LLM as a string literal; anything that is not an exact match for one
// of the five tags normalizes to VerdictUnknown. It is never inferred.
type Verdict string

const (
	VerdictSignificantlyBelow Verdict = "significantly_below_market"
	VerdictBelow              Verdict = "below_market"
	VerdictWithin             Verdict = "within_typical"
	VerdictAbove              Verdict = "above_market"
	VerdictSignificantlyAbove Verdict = "significantly_above_market"
	VerdictUnknown            Verdict = "unknown"
)

// Verdicts lists the accepted literal values, VerdictUnknown excluded.
var Verdicts = []Verdict{
	VerdictSignificantlyBelow,
	VerdictBelow,
	VerdictWithin,
	VerdictAbove,
	VerdictSignificantlyAbove,
}

// Disclaimer is the canonical market-snapshot disclaimer. It is always
// written over whatever the model returned; product copy must not drift
// based on model output.
const Disclaimer = "This is a rough market snapshot. Exact pricing depends on scope and site conditions."

// PriceRange holds money-formatted strings, not parsed numbers. The model
// may return "—" for any bound it cannot estimate.
type PriceRange struct {
	Low  string `json:"low"`
	Mid  string `json:"mid"`
	High string `json:"high"`
}

// CostEstimate is the three-tier repair cost estimate for a photo report.
type CostEstimate struct {
	Minor    string `json:"minor"`
	Moderate string `json:"moderate"`
	Major    string `json:"major"`
}

// PhotoFindings holds the photo-variant analysis.
type PhotoFindings struct {
	Classification string        `json:"classification"`
	Confidence     Confidence    `json:"confidence"`
	LooksGood      []string      `json:"looks_good"`
	Issues         []string      `json:"issues"`
	CostEstimate   *CostEstimate `json:"cost_estimate,omitempty"`
	Questions      []string      `json:"questions"`
}

// BidFindings holds the bid-variant analysis.
type BidFindings struct {
	Included     []string    `json:"included"`
	Missing      []string    `json:"missing"`
	RedFlags     []string    `json:"red_flags"`
	TypicalRange *PriceRange `json:"typical_range,omitempty"`
	Questions    []string    `json:"questions"`
}

// Report is the base (free-tier) record. Exactly one of Photo or Bid is set,
// matching Kind. A report is immutable once created; the only later mutation
// is the append-only attachment of a Detail in the store.
type Report struct {
	ID        string         `json:"id"`
	Kind      ReportKind     `json:"kind"`
	Photo     *PhotoFindings `json:"photo,omitempty"`
	Bid       *BidFindings   `json:"bid,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// MarketComparison is the pricing-context sub-record of a Detail.
type MarketComparison struct {
	Area       string     `json:"area"`
	Expected   PriceRange `json:"expected_range"`
	Verdict    Verdict    `json:"verdict"`
	Notes      []string   `json:"notes"`
	Disclaimer string     `json:"disclaimer"`
	BidTotal   string     `json:"bid_total,omitempty"`
	Assumption []string   `json:"assumptions,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// Detail is the paid-tier enrichment, attached 1:1 to a Report by id.
type Detail struct {
	ReportID             string            `json:"report_id"`
	DeeperIssues         []string          `json:"deeper_issues"`
	PaymentScheduleNotes []string          `json:"payment_schedule_notes"`
	ContractWarnings     []string          `json:"contract_warnings"`
	NegotiationTips      []string          `json:"negotiation_tips"`
	PDFSummary           string            `json:"pdf_summary"`
	Market               *MarketComparison `json:"market_comparison,omitempty"`
}

// ValidVerdict reports whether v is one of the five accepted literals.
func ValidVerdict(v string) bool {
	for _, w := range Verdicts {
		if string(w) == v {
			return true
		}
	}
	return false
}

// ValidConfidence reports whether c is one of the three tiers.
func ValidConfidence(c string) bool {
	switch Confidence(c) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}
