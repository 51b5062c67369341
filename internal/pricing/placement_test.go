package pricing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestEvaluate_NilBid(t *testing.T) {
	res := Evaluate(8500, 11000, nil)
	assert.Equal(t, PositionUnknown, res.Position)
	assert.Nil(t, res.PercentFromLow)
	assert.Nil(t, res.PercentFromHigh)
	assert.Equal(t, 9750.0, res.MarketMid)
}

func TestEvaluate_ZeroOrNegativeBid(t *testing.T) {
	for _, bid := range []float64{0, -1, -8500} {
		res := Evaluate(8500, 11000, fptr(bid))
		assert.Equal(t, PositionUnknown, res.Position, "bid=%v", bid)
	}
}

func TestEvaluate_ZeroBounds(t *testing.T) {
	res := Evaluate(0, 0, fptr(9000))
	assert.Equal(t, PositionUnknown, res.Position)
	assert.Equal(t, 0.0, res.MarketMid)
}

func TestEvaluate_NegativeLowClamped(t *testing.T) {
	res := Evaluate(-5000, 11000, fptr(9000))
	assert.Equal(t, 0.0, res.MarketLow)
	// low clamps to 0, so the band is unusable.
	assert.Equal(t, PositionUnknown, res.Position)
}

func TestEvaluate_DegenerateBandCollapses(t *testing.T) {
	res := Evaluate(10000, 4000, fptr(10000))
	assert.Equal(t, 10000.0, res.MarketLow)
	assert.Equal(t, 10000.0, res.MarketHigh)
	assert.Equal(t, PositionWithin, res.Position)
}

func TestEvaluate_SignificantlyAbove(t *testing.T) {
	// 15500 > 11000*1.4 = 15400
	res := Evaluate(8500, 11000, fptr(15500))
	assert.Equal(t, PositionSignificantlyAbove, res.Position)
	require.NotNil(t, res.PercentFromHigh)
	assert.Equal(t, 41, *res.PercentFromHigh)
	assert.Nil(t, res.PercentFromLow)
}

func TestEvaluate_Within(t *testing.T) {
	res := Evaluate(8500, 11000, fptr(9700))
	assert.Equal(t, PositionWithin, res.Position)
	assert.Nil(t, res.PercentFromLow)
	assert.Nil(t, res.PercentFromHigh)
}

func TestEvaluate_Boundaries(t *testing.T) {
	const low, high = 8500.0, 11000.0
	tests := []struct {
		name string
		bid  float64
		want Position
	}{
		{"just under significance cutoff", low*0.8 - 1, PositionSignificantlyBelow},
		{"at significance cutoff", low * 0.8, PositionBelow},
		{"just under low", low - 1, PositionBelow},
		{"at low", low, PositionWithin},
		{"at high", high, PositionWithin},
		{"just over high", high + 1, PositionAbove},
		{"at overprice cutoff", high * 1.4, PositionAbove},
		{"just over overprice cutoff", high*1.4 + 1, PositionSignificantlyAbove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(low, high, fptr(tt.bid))
			assert.Equal(t, tt.want, res.Position)
		})
	}
}

// Sweeping the bid upward must walk the positions in band order with no
// other transitions.
func TestEvaluate_MonotoneSweep(t *testing.T) {
	const low, high = 8500.0, 11000.0
	order := map[Position]int{
		PositionSignificantlyBelow: 0,
		PositionBelow:              1,
		PositionWithin:             2,
		PositionAbove:              3,
		PositionSignificantlyAbove: 4,
	}
	prev := -1
	for bid := 1.0; bid <= 3*high; bid += 7 {
		res := Evaluate(low, high, fptr(bid))
		rank, ok := order[res.Position]
		require.True(t, ok, "unexpected position %s at bid %v", res.Position, bid)
		require.GreaterOrEqual(t, rank, prev, "position regressed at bid %v", bid)
		prev = rank
	}
	assert.Equal(t, order[PositionSignificantlyAbove], prev)
}

func TestEvaluate_PercentFromLow(t *testing.T) {
	// (8500-6800)/8500 = 20% exactly, but 6800 == low*0.8 is not "significantly".
	res := Evaluate(8500, 11000, fptr(6800))
	assert.Equal(t, PositionBelow, res.Position)
	require.NotNil(t, res.PercentFromLow)
	assert.Equal(t, 20, *res.PercentFromLow)
}

func TestFreeLabel_AllPositionsCovered(t *testing.T) {
	for _, p := range []Position{
		PositionSignificantlyBelow, PositionBelow, PositionWithin,
		PositionAbove, PositionSignificantlyAbove, PositionUnknown,
	} {
		l := FreeLabel(p)
		assert.NotEmpty(t, l.Title, "position %s", p)
		assert.NotEmpty(t, l.Line, "position %s", p)
	}
}

func TestFreeLabel_Tones(t *testing.T) {
	assert.Equal(t, ToneAlert, FreeLabel(PositionSignificantlyBelow).Tone)
	assert.Equal(t, ToneAlert, FreeLabel(PositionSignificantlyAbove).Tone)
	assert.Equal(t, ToneWarn, FreeLabel(PositionBelow).Tone)
	assert.Equal(t, ToneWarn, FreeLabel(PositionAbove).Tone)
	assert.Equal(t, ToneNeutral, FreeLabel(PositionWithin).Tone)
	assert.Equal(t, ToneNeutral, FreeLabel(PositionUnknown).Tone)
}

// Numbers are a paid-tier feature; free-tier copy must never carry a digit.
func TestFreeLabel_NeverContainsDigits(t *testing.T) {
	digits := regexp.MustCompile(`\d`)
	for p, l := range freeLabels {
		assert.False(t, digits.MatchString(l.Title), "title for %s leaks a number", p)
		assert.False(t, digits.MatchString(l.Line), "line for %s leaks a number", p)
	}
}

func TestFreeLabel_UnrecognizedFallsBack(t *testing.T) {
	l := FreeLabel(Position("kinda_high"))
	assert.Equal(t, freeLabels[PositionUnknown], l)
}
