// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jorge-barreto/monozip/internal/pipeline"
	"github.com/jorge-barreto/monozip/internal/preset"
)

const requestIDHeader = "X-Request-Id"

// Server serves /generate, /presets and /healthz.
type Server struct {
	pipe     *pipeline.Pipeline
	log      *zap.Logger
	maxBytes int64
}

// New returns a server for p. Request bodies above maxBytes are rejected;
// zero or less means no limit.
func New(p *pipeline.Pipeline, maxBytes int64, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{pipe: p, log: log, maxBytes: maxBytes}
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /presets", s.handlePresets)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type fileReport struct {
	Lines int    `json:"lines"`
	Lang  string `json:"lang"`
}

type generateResponse struct {
	ZipBase64  string                `json:"zip_base64"`
	Filename   string                `json:"filename"`
	TotalFiles int                   `json:"total_files"`
	TotalSize  int                   `json:"total_size"`
	Languages  map[string]int        `json:"languages"`
	Report     map[string]fileReport `json:"report"`
	Digest     string                `json:"digest"`
}

type presetInfo struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Files []string `json:"files"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	}
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}
	req.ID = w.Header().Get(requestIDHeader)

	res, err := s.pipe.Run(r.Context(), req)
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No files found"})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Could not build archive"})
		return
	}

	w.Header().Set("ETag", `"`+res.Archive.Digest.Encoded()+`"`)
	writeJSON(w, http.StatusOK, newGenerateResponse(res))
}

func newGenerateResponse(res *pipeline.Result) generateResponse {
	rep := res.Report()
	files := make(map[string]fileReport, len(rep.PerFile))
	for path, st := range rep.PerFile {
		files[path] = fileReport{Lines: st.Lines, Lang: st.Lang}
	}
	return generateResponse{
		ZipBase64:  base64.StdEncoding.EncodeToString(res.Archive.Data),
		Filename:   res.Filename,
		TotalFiles: rep.TotalFiles,
		TotalSize:  rep.TotalBytes,
		Languages:  rep.Languages,
		Report:     files,
		Digest:     res.Archive.Digest.String(),
	}
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetList(s.pipe.Catalog))
}

func presetList(c *preset.Catalog) []presetInfo {
	out := []presetInfo{}
	if c == nil {
		return out
	}
	for _, p := range c.All() {
		out = append(out, presetInfo{Key: p.Key, Label: p.Label, Files: p.Paths()})
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusWriter records the status code for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("duration", time.Since(start)),
		}
		if sw.status >= http.StatusInternalServerError {
			s.log.Error("request", fields...)
		} else {
			s.log.Info("request", fields...)
		}
	})
}
