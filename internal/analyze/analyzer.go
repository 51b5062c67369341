// Package analyze runs the LLM-backed assessment pipeline: prompt the model,
// extract its JSON, normalize it into a strict record, persist it.
package analyze

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/normalize"
	"github.com/bidsight/bidsight/internal/pricing"
	"github.com/bidsight/bidsight/internal/store"
	"github.com/bidsight/bidsight/pkg/anthropic"
)

// ErrLocked is returned when detail generation is requested for a report the
// payment collaborator has not unlocked.
var ErrLocked = eris.New("analyze: report is not unlocked for detail generation")

const defaultMaxTokens = 2048

// Analyzer owns the LLM client and the report store.
type Analyzer struct {
	llm   anthropic.Client
	store store.Store
	model string
}

// New creates an Analyzer. The model is the Anthropic model ID used for all
// calls.
func New(llm anthropic.Client, st store.Store, modelID string) *Analyzer {
	return &Analyzer{llm: llm, store: st, model: modelID}
}

// AnalyzeBid runs the free-tier assessment of a text bid and persists the
// resulting report.
func (a *Analyzer) AnalyzeBid(ctx context.Context, bidText string) (*model.Report, error) {
	if bidText == "" {
		return nil, eris.New("analyze: bid text is required")
	}
	raw, err := a.complete(ctx, "bid", bidSystemPrompt, anthropic.Message{
		Role:    "user",
		Content: bidText,
	})
	if err != nil {
		return nil, err
	}

	rep := normalize.Report(raw, normalize.Fallback{
		ID:   uuid.New().String(),
		Kind: model.KindBid,
	})
	if err := a.store.CreateReport(ctx, rep); err != nil {
		return nil, err
	}
	zap.L().Info("bid report created", zap.String("report_id", rep.ID))
	return &rep, nil
}

// AnalyzePhoto runs the free-tier assessment of a photo (base64 inline) and
// persists the resulting report. note is optional homeowner context.
func (a *Analyzer) AnalyzePhoto(ctx context.Context, imageB64, mediaType, note string) (*model.Report, error) {
	if imageB64 == "" {
		return nil, eris.New("analyze: image data is required")
	}
	if note == "" {
		note = "Assess this photo."
	}
	raw, err := a.complete(ctx, "photo", photoSystemPrompt, anthropic.Message{
		Role:    "user",
		Content: note,
		Image:   &anthropic.ImageData{MediaType: mediaType, Base64: imageB64},
	})
	if err != nil {
		return nil, err
	}

	rep := normalize.Report(raw, normalize.Fallback{
		ID:   uuid.New().String(),
		Kind: model.KindPhoto,
	})
	if err := a.store.CreateReport(ctx, rep); err != nil {
		return nil, err
	}
	zap.L().Info("photo report created", zap.String("report_id", rep.ID))
	return &rep, nil
}

// GenerateDetail produces and attaches the paid-tier enrichment for an
// unlocked report. Attachment is append-only; a second call fails.
func (a *Analyzer) GenerateDetail(ctx context.Context, reportID string) (*model.Detail, error) {
	entry, err := a.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !entry.Unlocked {
		return nil, ErrLocked
	}
	if entry.Detail != nil {
		return nil, store.ErrDetailExists
	}

	reportJSON, err := json.Marshal(entry.Report)
	if err != nil {
		return nil, eris.Wrap(err, "analyze: marshal report for detail prompt")
	}

	raw, err := a.complete(ctx, "detail", detailSystemPrompt, anthropic.Message{
		Role:    "user",
		Content: string(reportJSON),
	})
	if err != nil {
		return nil, err
	}

	detail := normalize.Detail(raw, reportID)
	logPlacement(reportID, detail.Market)

	if err := a.store.AttachDetail(ctx, reportID, detail); err != nil {
		return nil, err
	}
	zap.L().Info("detail attached", zap.String("report_id", reportID))
	return &detail, nil
}

// complete runs one model call and extracts its JSON payload. Extraction
// failure is the single malformed-upstream error path; the raw text is
// logged for diagnosis, never defaulted.
func (a *Analyzer) complete(ctx context.Context, phase, system string, msg anthropic.Message) (any, error) {
	resp, err := a.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: defaultMaxTokens,
		System:    system,
		Messages:  []anthropic.Message{msg},
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(a.model, phase)

	text := resp.Text()
	raw, err := normalize.ExtractJSON(text)
	if err != nil {
		zap.L().Debug("unparseable model response",
			zap.String("phase", phase),
			zap.String("raw", text),
		)
		return nil, eris.Wrapf(err, "analyze: %s response", phase)
	}
	return raw, nil
}

// logPlacement computes the local numeric placement from the detail's own
// range and bid total. Purely observational here; the evaluator's real
// consumer is the free-tier pricing endpoint.
func logPlacement(reportID string, mc *model.MarketComparison) {
	if mc == nil {
		return
	}
	low, okLow := pricing.ParseMoney(mc.Expected.Low)
	high, okHigh := pricing.ParseMoney(mc.Expected.High)
	if !okLow || !okHigh {
		return
	}
	var bid *float64
	if v, ok := pricing.ParseMoney(mc.BidTotal); ok {
		bid = &v
	}
	res := pricing.Evaluate(low, high, bid)
	zap.L().Info("market placement",
		zap.String("report_id", reportID),
		zap.String("verdict", string(mc.Verdict)),
		zap.String("position", string(res.Position)),
	)
}
