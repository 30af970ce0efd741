package mjmerge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/mjmerge/internal/merge"
	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/aretw0/mjmerge/pkg/observability"
	"github.com/beevik/etree"
)

// DefaultModelName is the model attribute of merged scenes.
const DefaultModelName = "mc_mujoco"

// Version is overridden at build time with
// -ldflags "-X github.com/aretw0/mjmerge.Version=v1.2.3".
var Version = "dev"

// ErrNoRobots is returned when Merge or Build is called without any model.
var ErrNoRobots = errors.New("no robot models to merge")

// DefaultOutputPath is where merged scenes are written unless WithOutputPath is used.
func DefaultOutputPath() string {
	return filepath.Join(os.TempDir(), DefaultModelName+".xml")
}

// Robot is one model to merge. Name prefixes every identifier the model
// contributes and must be unique within a merge.
type Robot struct {
	Name string `json:"name" yaml:"name"`
	File string `json:"file" yaml:"file"`
}

// Engine merges MJCF models into a single scene.
// It holds configuration only, so one Engine can serve concurrent merges as
// long as they write to different output paths.
type Engine struct {
	logger     *slog.Logger
	sinks      []diagnostics.Sink
	metrics    *observability.Metrics
	outputPath string
	modelName  string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Conflicts are always logged as warnings on it.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSink adds a diagnostics sink receiving every conflict. May be repeated.
func WithSink(sink diagnostics.Sink) Option {
	return func(e *Engine) {
		e.sinks = append(e.sinks, sink)
	}
}

// WithMetrics records merge outcomes and conflicts on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithOutputPath sets where Merge writes the scene (default: DefaultOutputPath).
func WithOutputPath(path string) Option {
	return func(e *Engine) {
		e.outputPath = path
	}
}

// WithModelName sets the model attribute of the merged scene (default: DefaultModelName).
func WithModelName(name string) Option {
	return func(e *Engine) {
		e.modelName = name
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.outputPath == "" {
		e.outputPath = DefaultOutputPath()
	}
	if e.modelName == "" {
		e.modelName = DefaultModelName
	}
	e.logger = e.logger.With("scene", e.modelName)
	return e
}

// OutputPath returns where Merge writes merged scenes.
func (e *Engine) OutputPath() string {
	return e.outputPath
}

// Merge combines robots into one scene and returns the path of the scene file.
//
// A single robot needs no merge: its file is returned as is and nothing is
// written. Otherwise the models are folded in the given order (the first model
// to set a shared attribute wins) and the scene is written to the output path.
// Any unreadable model aborts the merge and nothing is written.
func (e *Engine) Merge(ctx context.Context, robots []Robot) (path string, err error) {
	start := time.Now()
	if e.metrics != nil {
		defer func() {
			e.metrics.ObserveMerge(len(robots), time.Since(start), err)
		}()
	}

	switch len(robots) {
	case 0:
		return "", ErrNoRobots
	case 1:
		e.logger.Debug("Single model, nothing to merge", "file", robots[0].File)
		return robots[0].File, nil
	}

	doc, err := e.Build(ctx, robots)
	if err != nil {
		return "", err
	}
	if err := mjcf.Save(doc, e.outputPath); err != nil {
		return "", err
	}
	e.logger.Info("Merged models", "robots", len(robots), "output", e.outputPath)
	return e.outputPath, nil
}

// Build folds robots into a new scene document without writing it.
// Unlike Merge, a single robot is still run through the merge.
func (e *Engine) Build(ctx context.Context, robots []Robot) (*etree.Document, error) {
	if len(robots) == 0 {
		return nil, ErrNoRobots
	}
	doc := mjcf.NewScene(e.modelName)
	m := merge.New(e.sink(), e.logger)
	for _, r := range robots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.MergeFile(r.Name, r.File, doc.Root()); err != nil {
			e.logger.Error("Merge aborted", "robot", r.Name, "file", r.File, "err", err)
			return nil, fmt.Errorf("robot %q: %w", r.Name, err)
		}
	}
	return doc, nil
}

func (e *Engine) sink() diagnostics.Sink {
	sink := diagnostics.Multi(append([]diagnostics.Sink{diagnostics.LogSink(e.logger)}, e.sinks...)...)
	if e.metrics != nil {
		sink = e.metrics.Sink(sink)
	}
	return sink
}

// Merge is a shortcut for New(opts...).Merge with a background context.
func Merge(robots []Robot, opts ...Option) (string, error) {
	return New(opts...).Merge(context.Background(), robots)
}
