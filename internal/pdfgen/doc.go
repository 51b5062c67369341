// Package pdfgen lays out paginated report documents. A builder owns one
// in-progress document; every drawing primitive goes through the builder and
// checks vertical space first, because the active page can be swapped by
// pagination at any point. Nothing may hold onto a page across that check.
package pdfgen

import (
	"bytes"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
)

// US Letter in points, cursor measured from the bottom edge.
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	marginLeft  = 54.0
	marginRight = 54.0

	headerHeight    = 64.0
	footerHeight    = 40.0
	bottomThreshold = footerHeight + 16
	topCursor       = pageHeight - headerHeight - 26

	contentWidth = pageWidth - marginLeft - marginRight

	bodySize       = 10.0
	bodyLineHeight = 14.0
	monoSize       = 8.0
	monoLineHeight = 10.0
	bulletIndent   = 12.0
)

const (
	fontRegular = "Helvetica"
	fontMono    = "Courier"
)

// footerDisclaimer is the per-page chrome sentence, distinct from the
// market-snapshot disclaimer inside the report body.
const footerDisclaimer = "Automated assessment for guidance only. Not a substitute for a professional inspection."

// builder owns one in-progress document. The cursor y is the distance from
// the bottom edge; it only ever moves down (shrinks) within a page and is
// reset by newPage.
type builder struct {
	pdf      *fpdf.Fpdf
	pageNum  int
	y        float64
	title    string
	reportID string
	logoPath string
}

func newBuilder(title, reportID, logoPath string) *builder {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Sanitize(title), false)

	b := &builder{
		pdf:      pdf,
		title:    title,
		reportID: reportID,
		logoPath: logoPath,
	}
	b.newPage()
	return b
}

// newPage allocates a page, redraws the chrome, and resets the cursor to
// just below the header.
func (b *builder) newPage() {
	b.pdf.AddPage()
	b.pageNum++
	b.drawHeader()
	b.drawFooter()
	b.y = topCursor
}

// ensureSpace starts a new page when needed points would not fit above the
// bottom threshold. Callers must re-read b.y afterward; the page may have
// been swapped underneath them.
func (b *builder) ensureSpace(needed float64) {
	if b.y-needed < bottomThreshold {
		b.newPage()
	}
}

// text draws a sanitized string with its baseline y points above the bottom
// edge.
func (b *builder) text(x, y float64, s string) {
	b.pdf.Text(x, pageHeight-y, Sanitize(s))
}

func (b *builder) measure(s string) float64 {
	return b.pdf.GetStringWidth(Sanitize(s))
}

func (b *builder) drawHeader() {
	textX := marginLeft

	if b.logoPath != "" {
		if _, err := os.Stat(b.logoPath); err == nil {
			b.pdf.ImageOptions(b.logoPath, marginLeft, 22, 24, 24, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			textX += 32
		}
		// Missing logo: render without it, text shifts left to fill the gap.
	}

	b.pdf.SetTextColor(20, 20, 20)
	b.pdf.SetFont(fontRegular, "B", 16)
	b.pdf.Text(textX, 42, Sanitize(b.title))

	b.pdf.SetFont(fontRegular, "", 9)
	b.pdf.SetTextColor(90, 90, 90)
	idLabel := Sanitize("Report ID: " + b.reportID)
	b.pdf.Text(pageWidth-marginRight-b.pdf.GetStringWidth(idLabel), 42, idLabel)

	b.pdf.SetDrawColor(180, 180, 180)
	b.pdf.SetLineWidth(0.8)
	b.pdf.Line(marginLeft, headerHeight-6, pageWidth-marginRight, headerHeight-6)
	b.pdf.SetTextColor(20, 20, 20)
}

func (b *builder) drawFooter() {
	b.pdf.SetFont(fontRegular, "", 8)
	b.pdf.SetTextColor(120, 120, 120)
	b.pdf.Text(marginLeft, pageHeight-footerHeight+14, footerDisclaimer)

	pageLabel := "Page " + strconv.Itoa(b.pageNum)
	b.pdf.Text(pageWidth-marginRight-b.pdf.GetStringWidth(pageLabel), pageHeight-footerHeight+14, pageLabel)
	b.pdf.SetTextColor(20, 20, 20)
}

// sectionTitle draws a bold heading with a divider rule and leaves a gap
// generous enough that the rule never collides with title descenders or the
// first body line.
func (b *builder) sectionTitle(title string) {
	b.ensureSpace(34)
	b.pdf.SetFont(fontRegular, "B", 12)
	b.text(marginLeft, b.y, title)

	b.pdf.SetDrawColor(200, 200, 200)
	b.pdf.SetLineWidth(0.5)
	ruleY := pageHeight - b.y + 7
	b.pdf.Line(marginLeft, ruleY, pageWidth-marginRight, ruleY)

	b.y -= 24
}

// bullets renders a dash marker plus wrapped text per item; continuation
// lines indent under the first word. An empty list still renders a single
// placeholder item so the section is visually present.
func (b *builder) bullets(items []string) {
	if len(items) == 0 {
		items = []string{"—"}
	}
	b.pdf.SetFont(fontRegular, "", bodySize)
	for _, item := range items {
		lines := Wrap(item, contentWidth-bulletIndent, b.measure)
		for i, line := range lines {
			b.ensureSpace(bodyLineHeight)
			if i == 0 {
				b.text(marginLeft, b.y, "-")
			}
			b.text(marginLeft+bulletIndent, b.y, line)
			b.y -= bodyLineHeight
		}
	}
	b.y -= 6
}

// paragraph wraps and renders a block of free text.
func (b *builder) paragraph(text string) {
	b.pdf.SetFont(fontRegular, "", bodySize)
	for _, line := range Wrap(text, contentWidth, b.measure) {
		b.ensureSpace(bodyLineHeight)
		b.text(marginLeft, b.y, line)
		b.y -= bodyLineHeight
	}
	b.y -= 6
}

// smallParagraph is paragraph at footnote size, used for in-body disclaimers.
func (b *builder) smallParagraph(text string) {
	b.pdf.SetFont(fontRegular, "", 8)
	b.pdf.SetTextColor(120, 120, 120)
	for _, line := range Wrap(text, contentWidth, b.measure) {
		b.ensureSpace(11)
		b.text(marginLeft, b.y, line)
		b.y -= 11
	}
	b.pdf.SetTextColor(20, 20, 20)
	b.y -= 6
}

// maxMonoLines caps the monospaced summary block. Anything past it is
// already unreadable filler in a document context.
const maxMonoLines = 240

// monoBlock renders pre-formatted summary text line by line in the mono
// face, wrapping each source line and capping the total.
func (b *builder) monoBlock(text string) {
	b.pdf.SetFont(fontMono, "", monoSize)
	drawn := 0
	for _, src := range splitLines(text) {
		for _, line := range Wrap(src, contentWidth, b.measure) {
			if drawn >= maxMonoLines {
				return
			}
			b.ensureSpace(monoLineHeight)
			b.text(marginLeft, b.y, line)
			b.y -= monoLineHeight
			drawn++
		}
	}
	b.y -= 6
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// rangeBar draws the three-segment Low|Mid|High band with a vertical tick at
// the bid position. Callers pass parsed numbers; hasBid=false omits the tick.
func (b *builder) rangeBar(low, mid, high, bid float64, hasBid bool) {
	const barHeight = 14.0
	b.ensureSpace(64)

	barTop := pageHeight - b.y
	segW := contentWidth / 3

	fills := [3][3]int{{214, 234, 214}, {214, 224, 240}, {240, 220, 214}}
	for i := 0; i < 3; i++ {
		c := fills[i]
		b.pdf.SetFillColor(c[0], c[1], c[2])
		b.pdf.Rect(marginLeft+float64(i)*segW, barTop, segW, barHeight, "F")
	}
	b.pdf.SetDrawColor(150, 150, 150)
	b.pdf.SetLineWidth(0.5)
	b.pdf.Rect(marginLeft, barTop, contentWidth, barHeight, "D")

	b.pdf.SetFont(fontRegular, "", 8)
	b.pdf.SetTextColor(90, 90, 90)
	labels := [3]string{
		"Low " + formatAmount(low),
		"Mid " + formatAmount(mid),
		"High " + formatAmount(high),
	}
	for i, label := range labels {
		b.pdf.Text(marginLeft+float64(i)*segW+4, barTop+barHeight+12, Sanitize(label))
	}

	if hasBid {
		tickX := marginLeft + tickFraction(low, high, bid)*contentWidth
		b.pdf.SetDrawColor(40, 40, 40)
		b.pdf.SetLineWidth(1.2)
		b.pdf.Line(tickX, barTop-6, tickX, barTop+barHeight+6)

		b.pdf.SetFont(fontRegular, "B", 8)
		b.pdf.SetTextColor(40, 40, 40)
		caption := "Your bid " + formatAmount(bid)
		capX := tickX - b.pdf.GetStringWidth(caption)/2
		if capX < marginLeft {
			capX = marginLeft
		}
		if capX+b.pdf.GetStringWidth(caption) > pageWidth-marginRight {
			capX = pageWidth - marginRight - b.pdf.GetStringWidth(caption)
		}
		b.pdf.Text(capX, barTop-10, Sanitize(caption))
	}

	b.pdf.SetTextColor(20, 20, 20)
	b.y -= 64
}

// formatAmount renders a parsed dollar value with thousands separators.
func formatAmount(v float64) string {
	digits := strconv.FormatInt(int64(math.Round(v)), 10)
	if digits == "0" || v < 0 {
		return "$0"
	}
	var sb strings.Builder
	sb.WriteByte('$')
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

// output drains the builder to a byte buffer. The builder is spent after
// this; partially-rendered state has no use outside a single render call.
func (b *builder) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, eris.Wrap(err, "pdfgen: write document")
	}
	return buf.Bytes(), nil
}
