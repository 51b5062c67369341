package pdfgen

// The bid tick is positioned inside a window wider than the low-high span
// so that bids outside the typical range still land visibly on the chart
// instead of pinned to an edge.
const (
	tickWindowLowFactor  = 0.5
	tickWindowHighFactor = 1.8
)

// tickFraction returns the bid's horizontal position as a fraction of the
// bar width, linearly interpolated within [low*0.5, high*1.8] and clamped to
// that window.
func tickFraction(low, high, bid float64) float64 {
	lo := low * tickWindowLowFactor
	hi := high * tickWindowHighFactor
	if hi <= lo {
		return 0.5
	}
	if bid < lo {
		bid = lo
	}
	if bid > hi {
		bid = hi
	}
	return (bid - lo) / (hi - lo)
}
