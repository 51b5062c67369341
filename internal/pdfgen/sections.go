package pdfgen

import (
	"github.com/rotisserie/eris"

	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/pricing"
)

// Precondition failures: there is nothing meaningful to render without an
// identity or a base record.
var (
	ErrMissingID       = eris.New("pdfgen: report id is required")
	ErrMissingFindings = eris.New("pdfgen: report carries no findings for its kind")
)

// Options configures optional document chrome.
type Options struct {
	// LogoPath points at a decorative header image. Rendering proceeds
	// without it when the file is unavailable.
	LogoPath string
}

var verdictPhrases = map[model.Verdict]string{
	model.VerdictSignificantlyBelow: "significantly below market",
	model.VerdictBelow:              "below market",
	model.VerdictWithin:             "within the typical range",
	model.VerdictAbove:              "above market",
	model.VerdictSignificantlyAbove: "significantly above market",
	model.VerdictUnknown:            "not determinable from this bid",
}

// Render lays out a paginated document for a report and its optional
// paid-tier detail, returning the finished bytes.
func Render(rep model.Report, detail *model.Detail, opts Options) ([]byte, error) {
	if rep.ID == "" {
		return nil, ErrMissingID
	}

	var title string
	switch rep.Kind {
	case model.KindPhoto:
		if rep.Photo == nil {
			return nil, ErrMissingFindings
		}
		title = "BidSight Photo Report"
	default:
		if rep.Bid == nil {
			return nil, ErrMissingFindings
		}
		title = "BidSight Bid Report"
	}

	b := newBuilder(title, rep.ID, opts.LogoPath)

	b.metadataCard(rep)

	if rep.Kind == model.KindPhoto {
		renderPhoto(b, rep.Photo, detail)
	} else {
		renderBid(b, rep.Bid, detail)
	}

	return b.output()
}

// Section order is fixed; it is part of the document contract.
func renderBid(b *builder, bid *model.BidFindings, detail *model.Detail) {
	if detail != nil && detail.Market != nil {
		marketSection(b, detail.Market)
	}

	b.sectionTitle("What's Included")
	b.bullets(bid.Included)

	b.sectionTitle("What's Missing")
	b.bullets(bid.Missing)

	b.sectionTitle("Red Flags")
	b.bullets(bid.RedFlags)

	if detail != nil {
		detailSections(b, detail)
		return
	}

	b.sectionTitle("Questions to Ask Your Contractor")
	b.bullets(bid.Questions)
}

func renderPhoto(b *builder, photo *model.PhotoFindings, detail *model.Detail) {
	if detail != nil && detail.Market != nil {
		marketSection(b, detail.Market)
	}

	b.sectionTitle("What Looks Good")
	b.bullets(photo.LooksGood)

	b.sectionTitle("Issues Found")
	b.bullets(photo.Issues)

	if photo.CostEstimate != nil {
		b.sectionTitle("Repair Cost Estimate")
		b.bullets([]string{
			"Minor: " + photo.CostEstimate.Minor,
			"Moderate: " + photo.CostEstimate.Moderate,
			"Major: " + photo.CostEstimate.Major,
		})
	}

	if detail != nil {
		detailSections(b, detail)
		return
	}

	b.sectionTitle("Questions to Ask a Contractor")
	b.bullets(photo.Questions)
}

func detailSections(b *builder, detail *model.Detail) {
	b.sectionTitle("Deeper Issues")
	b.bullets(detail.DeeperIssues)

	b.sectionTitle("Payment Schedule Notes")
	b.bullets(detail.PaymentScheduleNotes)

	b.sectionTitle("Contract Warnings")
	b.bullets(detail.ContractWarnings)

	b.sectionTitle("Negotiation Tips")
	b.bullets(detail.NegotiationTips)

	if detail.PDFSummary != "" {
		b.sectionTitle("Report Summary")
		b.monoBlock(detail.PDFSummary)
	}
}

func marketSection(b *builder, mc *model.MarketComparison) {
	b.sectionTitle("Market Comparison")

	b.paragraph("Area: " + mc.Area)
	b.paragraph("Typical range: " + mc.Expected.Low + " to " + mc.Expected.High +
		" (mid " + mc.Expected.Mid + "). This bid reads as " + verdictPhrases[mc.Verdict] + ".")

	// The chart needs all three bounds as numbers. When the model returned
	// "—" for any of them the textual range above still stands on its own.
	low, okLow := pricing.ParseMoney(mc.Expected.Low)
	mid, okMid := pricing.ParseMoney(mc.Expected.Mid)
	high, okHigh := pricing.ParseMoney(mc.Expected.High)
	if okLow && okMid && okHigh {
		bid, okBid := pricing.ParseMoney(mc.BidTotal)
		b.rangeBar(low, mid, high, bid, okBid)
	}

	if len(mc.Notes) > 0 {
		b.bullets(mc.Notes)
	}
	if len(mc.Assumption) > 0 {
		b.paragraph("Assumptions:")
		b.bullets(mc.Assumption)
	}
	b.smallParagraph(mc.Disclaimer)
}

func (b *builder) metadataCard(rep model.Report) {
	b.pdf.SetFont(fontRegular, "", 9)
	b.pdf.SetTextColor(90, 90, 90)

	line := "Generated " + rep.CreatedAt.UTC().Format("Jan 2, 2006 15:04 UTC")
	if rep.Kind == model.KindPhoto && rep.Photo != nil {
		line += "  |  " + rep.Photo.Classification + "  |  confidence: " + string(rep.Photo.Confidence)
	}
	b.ensureSpace(16)
	b.text(marginLeft, b.y, line)
	b.pdf.SetTextColor(20, 20, 20)
	b.y -= 22
}
