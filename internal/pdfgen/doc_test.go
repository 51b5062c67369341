package pdfgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidsight/bidsight/internal/model"
)

func sampleBidReport() model.Report {
	return model.Report{
		ID:   "rpt-test-1",
		Kind: model.KindBid,
		Bid: &model.BidFindings{
			Included:     []string{"Demolition and haul-off", "Tile labor and materials"},
			Missing:      []string{"Permit fees"},
			RedFlags:     []string{"50% deposit requested up front"},
			TypicalRange: &model.PriceRange{Low: "$8,500", Mid: "$9,750", High: "$11,000"},
			Questions:    []string{"Is the tile allowance capped?"},
		},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func sampleDetail() *model.Detail {
	return &model.Detail{
		ReportID:             "rpt-test-1",
		DeeperIssues:         []string{"No lien waiver language"},
		PaymentScheduleNotes: []string{"Progress payments not tied to milestones"},
		ContractWarnings:     []string{"No change-order process defined"},
		NegotiationTips:      []string{"Ask for a 10% retention until punch list clears"},
		PDFSummary:           "SCOPE\n  Bathroom remodel, 60 sq ft\nPRICE\n  $12,400 total",
		Market: &model.MarketComparison{
			Area:       "Austin, TX metro",
			Expected:   model.PriceRange{Low: "$8,500", Mid: "$9,750", High: "$11,000"},
			Verdict:    model.VerdictAbove,
			Notes:      []string{"Tile work is the main cost driver"},
			Disclaimer: model.Disclaimer,
			BidTotal:   "$12,400",
		},
	}
}

func TestRender_MissingID(t *testing.T) {
	rep := sampleBidReport()
	rep.ID = ""
	_, err := Render(rep, nil, Options{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestRender_MissingFindings(t *testing.T) {
	rep := model.Report{ID: "rpt-x", Kind: model.KindBid}
	_, err := Render(rep, nil, Options{})
	assert.ErrorIs(t, err, ErrMissingFindings)
}

func TestRender_FreeBidReport(t *testing.T) {
	data, err := Render(sampleBidReport(), nil, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	assert.Greater(t, len(data), 1000)
}

func TestRender_PaidBidReportWithChart(t *testing.T) {
	data, err := Render(sampleBidReport(), sampleDetail(), Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRender_ChartOmittedWhenRangeUnparseable(t *testing.T) {
	detail := sampleDetail()
	detail.Market.Expected = model.PriceRange{Low: "—", Mid: "—", High: "—"}
	data, err := Render(sampleBidReport(), detail, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRender_MissingLogoRecovered(t *testing.T) {
	data, err := Render(sampleBidReport(), nil, Options{LogoPath: "/nonexistent/logo.png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRender_PhotoReport(t *testing.T) {
	rep := model.Report{
		ID:   "rpt-photo-1",
		Kind: model.KindPhoto,
		Photo: &model.PhotoFindings{
			Classification: "Roof flashing",
			Confidence:     model.ConfidenceMedium,
			LooksGood:      []string{"Shingle condition"},
			Issues:         []string{"Lifted step flashing at chimney"},
			CostEstimate:   &model.CostEstimate{Minor: "$150-$400", Moderate: "$800-$2,000", Major: "$5,000+"},
			Questions:      []string{"When was the flashing last sealed?"},
		},
		CreatedAt: time.Now().UTC(),
	}
	data, err := Render(rep, nil, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestEnsureSpace_PaginatesAndResetsCursor(t *testing.T) {
	b := newBuilder("Test", "rpt-1", "")
	require.Equal(t, 1, b.pageNum)
	assert.Equal(t, topCursor, b.y)

	b.y = bottomThreshold + 5
	b.ensureSpace(4)
	assert.Equal(t, 1, b.pageNum, "space was sufficient, no new page")

	b.ensureSpace(20)
	assert.Equal(t, 2, b.pageNum)
	assert.Equal(t, topCursor, b.y, "cursor resets below the header")
}

// Arbitrarily long content never pushes a draw origin below the bottom
// threshold; every primitive checks space before drawing.
func TestBullets_PaginationSafety(t *testing.T) {
	b := newBuilder("Test", "rpt-1", "")
	items := make([]string, 200)
	for i := range items {
		items[i] = "A finding with enough words to wrap across more than a single line of body text in the document layout"
	}
	b.bullets(items)
	assert.Greater(t, b.pageNum, 1)
	// After the last drawn line the cursor may sit one line height (plus the
	// trailing group gap) under the threshold, never more.
	assert.GreaterOrEqual(t, b.y, bottomThreshold-bodyLineHeight-6)
}

func TestMonoBlock_CapsLines(t *testing.T) {
	b := newBuilder("Test", "rpt-1", "")
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		sb.WriteString("line of summary text\n")
	}
	startPage := b.pageNum
	b.monoBlock(sb.String())
	// 240 mono lines at 10pt each fit in roughly four pages of body space.
	assert.LessOrEqual(t, b.pageNum-startPage, 5)
}

func TestBullets_EmptyListRendersPlaceholder(t *testing.T) {
	b := newBuilder("Test", "rpt-1", "")
	before := b.y
	b.bullets(nil)
	assert.Less(t, b.y, before, "placeholder item still consumes a line")
}

func TestTickFraction(t *testing.T) {
	// Window is [low*0.5, high*1.8] = [4250, 19800] for the sample range.
	const low, high = 8500.0, 11000.0

	assert.InDelta(t, 0.0, tickFraction(low, high, 1000), 1e-9, "clamped at window floor")
	assert.InDelta(t, 1.0, tickFraction(low, high, 50000), 1e-9, "clamped at window ceiling")

	mid := (low*tickWindowLowFactor + high*tickWindowHighFactor) / 2
	assert.InDelta(t, 0.5, tickFraction(low, high, mid), 1e-9)

	// Monotone in bid.
	prev := -1.0
	for bid := 0.0; bid < 60000; bid += 500 {
		f := tickFraction(low, high, bid)
		assert.GreaterOrEqual(t, f, prev)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
		prev = f
	}

	assert.Equal(t, 0.5, tickFraction(0, 0, 100), "degenerate window centers the tick")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$9,750", formatAmount(9750))
	assert.Equal(t, "$1,250,000", formatAmount(1250000))
	assert.Equal(t, "$500", formatAmount(499.7))
	assert.Equal(t, "$0", formatAmount(0))
}
