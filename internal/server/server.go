package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/Zuo-Peng/ris/internal/source"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const maxUpload = 64 << 20

// Handler serves the analyzer over HTTP.
type Handler struct {
	analyzer *analysis.Analyzer
	loader   *source.Loader
	lexicon  metric.Lexicon
	log      logrus.FieldLogger
}

func New(a *analysis.Analyzer, loader *source.Loader, lex metric.Lexicon, log logrus.FieldLogger) *Handler {
	return &Handler{analyzer: a, loader: loader, lexicon: lex, log: log}
}

// NewRouter wires middleware and routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", h.RegisterRoutes)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/lexicon", h.handleLexicon)
	r.Post("/analyze", h.handleAnalyze)
}

func (h *Handler) handleLexicon(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Lexicon metric.Lexicon `json:"lexicon"`
		Weights score.Weights  `json:"weights"`
	}{h.lexicon, h.analyzer.Weights()})
}

type analyzeRequest struct {
	YourName   string `json:"yourName"`
	TheirName  string `json:"theirName"`
	Transcript string `json:"transcript"`
}

// handleAnalyze accepts either a JSON body or a multipart form with the
// fields yourName, theirName and a file upload named file.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	var in analysis.Input
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		in, err = h.readUpload(r)
		if err != nil {
			h.respondFailure(w, r, err)
			return
		}
	} else {
		var payload analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		in = analysis.Input(payload)
	}

	rep, err := h.analyzer.Analyze(in)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"run_id":  rep.RunID,
		"percent": rep.Verdict.Percent,
		"msgs":    rep.Messages,
	}).Info("analysis complete")
	respondJSON(w, http.StatusOK, rep)
}

func (h *Handler) readUpload(r *http.Request) (analysis.Input, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return analysis.Input{}, &source.ReadError{Path: "upload", Err: err}
	}
	in := analysis.Input{
		YourName:  r.FormValue("yourName"),
		TheirName: r.FormValue("theirName"),
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		// validation reports the missing transcript
		return in, nil
	}
	if err != nil {
		return in, &source.ReadError{Path: "upload", Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return in, &source.ReadError{Path: header.Filename, Err: err}
	}
	t, err := h.loader.LoadBytes(header.Filename, data)
	if err != nil {
		return in, err
	}
	in.Transcript = t.Text
	return in, nil
}

func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *analysis.ValidationError
		rerr *source.ReadError
	)
	switch {
	case errors.As(err, &verr) && len(verr.Senders) > 0:
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   verr.Message,
			"senders": verr.Senders,
		})
	case errors.As(err, &verr):
		respondError(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.As(err, &rerr):
		respondError(w, http.StatusBadRequest, rerr.Err.Error())
	default:
		h.log.WithError(err).WithField("request_id", middleware.GetReqID(r.Context())).Error("analysis failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
