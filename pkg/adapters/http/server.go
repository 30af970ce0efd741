package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aretw0/mjmerge"
	"github.com/aretw0/mjmerge/internal/config"
	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxRequestBytes bounds the size of a POST /merge body.
const MaxRequestBytes = 1 << 20

// ErrOutsideRoot is returned for robot files that resolve outside Server.Root.
var ErrOutsideRoot = errors.New("file is outside the model root")

// MergeRequest is the body of POST /merge.
type MergeRequest struct {
	Model  string          `json:"model,omitempty"`
	Robots []mjmerge.Robot `json:"robots"`
}

// MergeResponse is returned by POST /merge.
type MergeResponse struct {
	Path      string                 `json:"path"`
	Merged    bool                   `json:"merged"`
	Conflicts []diagnostics.Conflict `json:"conflicts"`
}

// Server merges scenes on request. Every merge writes to its own file under
// OutputDir, so concurrent requests never share an output.
type Server struct {
	OutputDir string
	// Root confines robot files: relative files are resolved against it and
	// files outside it are rejected. Empty means any local path.
	Root    string
	Options []mjmerge.Option // applied to every engine (logger, metrics, ...)
	Logger  *slog.Logger
}

// NewHandler creates the HTTP handler for s. When gatherer is not nil its
// metrics are served on /metrics.
func NewHandler(s *Server, gatherer prometheus.Gatherer) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/merge", s.Merge)

	return r
}

// Merge handles POST /merge.
func (s *Server) Merge(w http.ResponseWriter, r *http.Request) {
	var body MergeRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid merge request body", "err", err)
		return
	}
	if len(body.Robots) == 0 {
		http.Error(w, mjmerge.ErrNoRobots.Error(), http.StatusBadRequest)
		return
	}
	if err := (&config.Scene{Robots: body.Robots}).Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.confine(body.Robots); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Rejected merge request", "err", err)
		return
	}

	rec := &diagnostics.Recorder{}
	output := filepath.Join(s.OutputDir, fmt.Sprintf("merged-%s.xml", uuid.NewString()))
	opts := append([]mjmerge.Option{}, s.Options...)
	opts = append(opts,
		mjmerge.WithSink(rec),
		mjmerge.WithOutputPath(output),
		mjmerge.WithModelName(body.Model),
	)

	path, err := mjmerge.New(opts...).Merge(r.Context(), body.Robots)
	if err != nil {
		http.Error(w, fmt.Sprintf("Merge error: %v", err), http.StatusUnprocessableEntity)
		s.Logger.Error("Merge failed", "err", err)
		return
	}

	conflicts := rec.Conflicts()
	if conflicts == nil {
		conflicts = []diagnostics.Conflict{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MergeResponse{
		Path:      path,
		Merged:    len(body.Robots) > 1,
		Conflicts: conflicts,
	}); err != nil {
		s.Logger.Error("Failed to encode merge response", "err", err)
	}
}

// confine rewrites robot files in place against s.Root.
func (s *Server) confine(robots []mjmerge.Robot) error {
	if s.Root == "" {
		return nil
	}
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return err
	}
	for i, r := range robots {
		file := r.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(root, file)
		}
		file = filepath.Clean(file)
		rel, err := filepath.Rel(root, file)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("robot %q: %w: %s", r.Name, ErrOutsideRoot, r.File)
		}
		robots[i].File = file
	}
	return nil
}
