package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bidsight/bidsight/internal/analyze"
	"github.com/bidsight/bidsight/internal/compare"
	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/monitoring"
	"github.com/bidsight/bidsight/internal/normalize"
	"github.com/bidsight/bidsight/internal/pdfgen"
	"github.com/bidsight/bidsight/internal/pricing"
	"github.com/bidsight/bidsight/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.Store, env.Analyzer, cfg.Report.LogoPath, cfg.Server.AllowedOrigins),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Error("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("server listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !eris.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	},
}

// newRouter builds the API surface. Split out so tests can exercise it with
// an in-memory store and a stubbed LLM.
func newRouter(st store.Store, analyzer *analyze.Analyzer, logoPath string, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", handleAnalyze(analyzer))
		r.Post("/pricing/evaluate", handlePricing)
		r.Post("/compare", handleCompare(st))
		r.Get("/stats", handleStats(st))

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", handleListReports(st))
			r.Get("/{id}", handleGetReport(st))
			r.Post("/{id}/unlock", handleUnlock(st, analyzer))
			r.Get("/{id}/pdf", handlePDF(st, logoPath))
		})
	})

	return r
}

type analyzeRequest struct {
	Kind        string `json:"kind"`
	Text        string `json:"text,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MediaType   string `json:"media_type,omitempty"`
	Note        string `json:"note,omitempty"`
}

func handleAnalyze(analyzer *analyze.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var rep *model.Report
		var err error
		switch body.Kind {
		case "bid":
			rep, err = analyzer.AnalyzeBid(req.Context(), body.Text)
		case "photo":
			rep, err = analyzer.AnalyzePhoto(req.Context(), body.ImageBase64, body.MediaType, body.Note)
		default:
			writeError(w, http.StatusBadRequest, `kind must be "bid" or "photo"`)
			return
		}
		if err != nil {
			writeAnalyzeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rep)
	}
}

type pricingRequest struct {
	MarketLow  float64  `json:"market_low"`
	MarketHigh float64  `json:"market_high"`
	BidAmount  *float64 `json:"bid_amount"`
}

type pricingResponse struct {
	pricing.Result
	Label pricing.Label `json:"label"`
}

// handlePricing is the free-tier placement endpoint: the verdict copy it
// returns carries no numbers, only the tone-tagged label.
func handlePricing(w http.ResponseWriter, req *http.Request) {
	var body pricingRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res := pricing.Evaluate(body.MarketLow, body.MarketHigh, body.BidAmount)
	writeJSON(w, http.StatusOK, pricingResponse{Result: res, Label: pricing.FreeLabel(res.Position)})
}

func handleStats(st store.Store) http.HandlerFunc {
	collector := monitoring.NewCollector(st)
	return func(w http.ResponseWriter, req *http.Request) {
		lookback := 0
		if raw := req.URL.Query().Get("lookback_hours"); raw != "" {
			lookback, _ = strconv.Atoi(raw)
		}
		snap, err := collector.Collect(req.Context(), lookback)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "stats collection failed")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleListReports(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		filter := store.Filter{Kind: model.ReportKind(req.URL.Query().Get("kind"))}
		if raw := req.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			filter.Limit = limit
		}
		entries, err := st.ListReports(req.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list reports failed")
			return
		}
		if entries == nil {
			entries = []store.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleGetReport(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		entry, err := st.GetReport(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "report not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "get report failed")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// handleUnlock receives the payment collaborator's "entitlement confirmed"
// signal and generates the paid-tier detail.
func handleUnlock(st store.Store, analyzer *analyze.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		if err := st.SetUnlocked(req.Context(), id); err != nil {
			if eris.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "report not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "unlock failed")
			return
		}

		detail, err := analyzer.GenerateDetail(req.Context(), id)
		if err != nil {
			if eris.Is(err, store.ErrDetailExists) {
				writeError(w, http.StatusConflict, "detail already generated")
				return
			}
			writeAnalyzeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, detail)
	}
}

func handlePDF(st store.Store, logoPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		entry, err := st.GetReport(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "report not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "get report failed")
			return
		}

		data, err := pdfgen.Render(entry.Report, entry.Detail, pdfgen.Options{LogoPath: logoPath})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", entry.Report.ID+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

type compareRequest struct {
	ReportA string `json:"report_a"`
	ReportB string `json:"report_b"`
}

type compareResponse struct {
	Sections map[string]compare.Result `json:"sections"`
}

func handleCompare(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body compareRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.ReportA == "" || body.ReportB == "" {
			writeError(w, http.StatusBadRequest, "report_a and report_b are required")
			return
		}

		a, err := st.GetReport(req.Context(), body.ReportA)
		if err != nil {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		b, err := st.GetReport(req.Context(), body.ReportB)
		if err != nil {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		if a.Report.Kind != b.Report.Kind {
			writeError(w, http.StatusBadRequest, "reports are different kinds")
			return
		}

		sections, err := comparisonSections(a.Report, b.Report)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "report is missing its findings")
			return
		}

		resp := compareResponse{Sections: map[string]compare.Result{}}
		for _, section := range sections {
			resp.Sections[section.name] = compare.Diff(section.a, section.b)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, normalize.ErrNoJSON):
		writeError(w, http.StatusBadGateway, "model response was not parseable")
	case eris.Is(err, analyze.ErrLocked):
		writeError(w, http.StatusPaymentRequired, "report is not unlocked")
	case eris.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "report not found")
	default:
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
