package normalize

import (
	"strconv"
	"time"

	"github.com/bidsight/bidsight/internal/model"
)

// placeholder stands in for any money or label string the model failed to
// supply in a usable shape.
const placeholder = "—"

// List caps per field. Model output past these counts is noise, not signal.
const (
	maxLooksGood    = 8
	maxIssues       = 10
	maxQuestions    = 8
	maxIncluded     = 12
	maxMissing      = 12
	maxRedFlags     = 10
	maxNotes        = 8
	maxAssumptions  = 8
	maxDetailIssues = 10
	maxTips         = 10
)

// listSpec names the candidate keys for a string-list field (snake_case plus
// the camelCase the model sometimes falls back to) and its cap.
type listSpec struct {
	keys []string
	max  int
}

var (
	looksGoodField   = listSpec{[]string{"looks_good", "looksGood"}, maxLooksGood}
	issuesField      = listSpec{[]string{"issues"}, maxIssues}
	questionsField   = listSpec{[]string{"questions", "suggested_questions", "suggestedQuestions"}, maxQuestions}
	includedField    = listSpec{[]string{"included", "whats_included"}, maxIncluded}
	missingField     = listSpec{[]string{"missing", "whats_missing"}, maxMissing}
	redFlagsField    = listSpec{[]string{"red_flags", "redFlags"}, maxRedFlags}
	notesField       = listSpec{[]string{"notes"}, maxNotes}
	assumptionsField = listSpec{[]string{"assumptions"}, maxAssumptions}
	deeperField      = listSpec{[]string{"deeper_issues", "deeperIssues"}, maxDetailIssues}
	paymentField     = listSpec{[]string{"payment_schedule_notes", "paymentScheduleNotes"}, maxTips}
	contractField    = listSpec{[]string{"contract_warnings", "contractWarnings"}, maxTips}
	negotiationField = listSpec{[]string{"negotiation_tips", "negotiationTips"}, maxTips}
)

// Fallback supplies the identity the normalizer uses when the model output
// carries none. Kind is always taken from context, never from the model.
type Fallback struct {
	ID   string
	Kind model.ReportKind
}

// Report coerces arbitrary parsed JSON into a fully-defaulted report record.
// It is total: any input shape, including nil or a bare scalar, yields a
// record with every field present and correctly typed.
func Report(raw any, fb Fallback) model.Report {
	obj, _ := raw.(map[string]any)

	rep := model.Report{
		ID:        asString(obj["id"], fb.ID),
		Kind:      fb.Kind,
		CreatedAt: time.Now().UTC(),
	}
	if rep.ID == "" {
		rep.ID = fb.ID
	}

	switch fb.Kind {
	case model.KindPhoto:
		rep.Photo = photoFindings(obj)
	default:
		rep.Bid = bidFindings(obj)
	}
	return rep
}

func photoFindings(obj map[string]any) *model.PhotoFindings {
	return &model.PhotoFindings{
		Classification: asString(pick(obj, "classification", "label"), "Unclassified"),
		Confidence:     asConfidence(obj["confidence"], model.ConfidenceLow),
		LooksGood:      stringList(obj, looksGoodField),
		Issues:         stringList(obj, issuesField),
		CostEstimate:   costEstimate(pick(obj, "cost_estimate", "costEstimate")),
		Questions:      stringList(obj, questionsField),
	}
}

func bidFindings(obj map[string]any) *model.BidFindings {
	return &model.BidFindings{
		Included:     stringList(obj, includedField),
		Missing:      stringList(obj, missingField),
		RedFlags:     stringList(obj, redFlagsField),
		TypicalRange: priceRange(pick(obj, "typical_range", "typicalRange")),
		Questions:    stringList(obj, questionsField),
	}
}

// Detail coerces the paid-tier enrichment. Same totality guarantee as
// Report; the market comparison is always present and fully defaulted.
func Detail(raw any, reportID string) model.Detail {
	obj, _ := raw.(map[string]any)

	return model.Detail{
		ReportID:             reportID,
		DeeperIssues:         stringList(obj, deeperField),
		PaymentScheduleNotes: stringList(obj, paymentField),
		ContractWarnings:     stringList(obj, contractField),
		NegotiationTips:      stringList(obj, negotiationField),
		PDFSummary:           asString(pick(obj, "pdf_summary", "pdfSummary", "summary"), ""),
		Market:               marketComparison(pick(obj, "market_comparison", "marketComparison")),
	}
}

func marketComparison(v any) *model.MarketComparison {
	obj, _ := v.(map[string]any)
	mc := &model.MarketComparison{
		Area:       asString(obj["area"], placeholder),
		Expected:   *priceRange(pick(obj, "expected_range", "expectedRange")),
		Verdict:    asVerdict(obj["verdict"]),
		Notes:      stringList(obj, notesField),
		BidTotal:   asString(pick(obj, "bid_total", "bidTotal"), ""),
		Assumption: stringList(obj, assumptionsField),
		Confidence: asConfidence(obj["confidence"], ""),
	}
	// Legal copy never comes from the model.
	mc.Disclaimer = model.Disclaimer
	return mc
}

func priceRange(v any) *model.PriceRange {
	obj, _ := v.(map[string]any)
	return &model.PriceRange{
		Low:  asString(obj["low"], placeholder),
		Mid:  asString(obj["mid"], placeholder),
		High: asString(obj["high"], placeholder),
	}
}

func costEstimate(v any) *model.CostEstimate {
	obj, _ := v.(map[string]any)
	return &model.CostEstimate{
		Minor:    asString(obj["minor"], placeholder),
		Moderate: asString(obj["moderate"], placeholder),
		Major:    asString(obj["major"], placeholder),
	}
}

// pick returns the first key present in obj. Indexing a nil map is safe, so
// a non-object parent just yields nil.
func pick(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return nil
}

func asString(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func asVerdict(v any) model.Verdict {
	if s, ok := v.(string); ok && model.ValidVerdict(s) {
		return model.Verdict(s)
	}
	return model.VerdictUnknown
}

func asConfidence(v any, fallback model.Confidence) model.Confidence {
	if s, ok := v.(string); ok && model.ValidConfidence(s) {
		return model.Confidence(s)
	}
	return fallback
}

// stringList accepts only an actual array, drops empty entries, coerces the
// surviving scalars to strings, and truncates at the field's cap. Anything
// else yields an empty (non-nil) slice.
func stringList(obj map[string]any, spec listSpec) []string {
	raw, _ := pick(obj, spec.keys...).([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := coerceScalar(item)
		if !ok || s == "" {
			continue
		}
		out = append(out, s)
		if len(out) >= spec.max {
			break
		}
	}
	return out
}

func coerceScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == 0 {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if !t {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}
