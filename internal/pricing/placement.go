// Package pricing computes where a bid amount sits relative to a market band.
package pricing

import "math"

// Position is the locally-computed numeric market placement. It is a
// distinct enum from model.Verdict: Verdict is asserted by the LLM as a
// string, Position is derived here from parsed numbers.
type Position string

const (
	PositionSignificantlyBelow Position = "significantly_below"
	PositionBelow              Position = "below"
	PositionWithin             Position = "within"
	PositionAbove              Position = "above"
	PositionSignificantlyAbove Position = "significantly_above"
	PositionUnknown            Position = "unknown"
)

// Result is the outcome of Evaluate. Percent fields are set only for the
// positions that define them.
type Result struct {
	Position        Position `json:"position"`
	MarketLow       float64  `json:"market_low"`
	MarketMid       float64  `json:"market_mid"`
	MarketHigh      float64  `json:"market_high"`
	PercentFromLow  *int     `json:"percent_from_low,omitempty"`
	PercentFromHigh *int     `json:"percent_from_high,omitempty"`
}

// Thresholds around the market band. Being underpriced is a bigger red flag
// at a smaller deviation than being overpriced, so the bands are asymmetric:
// 20% under the low bound already reads "significantly", while it takes 40%
// over the high bound to earn the same weight.
const (
	significantlyBelowFactor = 0.8
	significantlyAboveFactor = 1.4
)

// Evaluate classifies bid against the [marketLow, marketHigh] band.
// Bounds are sanitized: low is clamped to >= 0, and a high that is not
// strictly greater than low collapses to low (a zero-width band). A nil,
// non-finite, or non-positive bid, or a zero bound, yields PositionUnknown.
func Evaluate(marketLow, marketHigh float64, bid *float64) Result {
	low := math.Max(0, marketLow)
	high := marketHigh
	if high <= low {
		high = low
	}

	var mid float64
	if low > 0 && high > 0 {
		mid = math.Round((low + high) / 2)
	}

	res := Result{
		Position:   PositionUnknown,
		MarketLow:  low,
		MarketMid:  mid,
		MarketHigh: high,
	}

	if bid == nil || math.IsNaN(*bid) || math.IsInf(*bid, 0) || *bid <= 0 {
		return res
	}
	if low == 0 || high == 0 {
		return res
	}
	b := *bid

	switch {
	case b < low*significantlyBelowFactor:
		res.Position = PositionSignificantlyBelow
		res.PercentFromLow = roundPct((low - b) / low)
	case b < low:
		res.Position = PositionBelow
		res.PercentFromLow = roundPct((low - b) / low)
	case b <= high:
		res.Position = PositionWithin
	case b <= high*significantlyAboveFactor:
		res.Position = PositionAbove
		res.PercentFromHigh = roundPct((b - high) / high)
	default:
		res.Position = PositionSignificantlyAbove
		res.PercentFromHigh = roundPct((b - high) / high)
	}

	return res
}

func roundPct(frac float64) *int {
	p := int(math.Round(frac * 100))
	return &p
}

// Tone tags the free-tier label copy for styling.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneWarn    Tone = "warn"
	ToneAlert   Tone = "alert"
)

// Label is number-free user-facing copy for a position. Exact deviation
// percentages are a paid-tier feature, so none of these strings may ever
// carry a digit.
type Label struct {
	Tone  Tone   `json:"tone"`
	Title string `json:"title"`
	Line  string `json:"line"`
}

var freeLabels = map[Position]Label{
	PositionSignificantlyBelow: {
		Tone:  ToneAlert,
		Title: "Well below the typical range",
		Line:  "A price this far under market often means missing scope or corners being cut. Ask what is excluded before you celebrate.",
	},
	PositionBelow: {
		Tone:  ToneWarn,
		Title: "Below the typical range",
		Line:  "Cheaper than most comparable work. Worth confirming the scope matches what pricier bids include.",
	},
	PositionWithin: {
		Tone:  ToneNeutral,
		Title: "Within the typical range",
		Line:  "This bid sits inside the range we see for comparable work in most markets.",
	},
	PositionAbove: {
		Tone:  ToneWarn,
		Title: "Above the typical range",
		Line:  "Pricier than most comparable work. That can be justified by scope or materials, but it is worth asking why.",
	},
	PositionSignificantlyAbove: {
		Tone:  ToneAlert,
		Title: "Well above the typical range",
		Line:  "A price this far over market deserves a line-item explanation before you sign anything.",
	},
	PositionUnknown: {
		Tone:  ToneNeutral,
		Title: "Not enough pricing data",
		Line:  "We could not place this bid against a market range. Unlock the full report for a deeper read of the scope itself.",
	},
}

// FreeLabel maps a position to its free-tier copy. Unrecognized positions
// fall back to the unknown label.
func FreeLabel(p Position) Label {
	if l, ok := freeLabels[p]; ok {
		return l
	}
	return freeLabels[PositionUnknown]
}
