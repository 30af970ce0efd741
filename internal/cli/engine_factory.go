package cli

import (
	"log/slog"

	"github.com/aretw0/mjmerge"
	"github.com/aretw0/mjmerge/internal/config"
	"github.com/aretw0/mjmerge/pkg/diagnostics"
)

// createEngine initializes a merge engine with standard CLI conventions.
// Conflicts go to the logger and to rec, which feeds the report.
func createEngine(scene *config.Scene, logger *slog.Logger, rec *diagnostics.Recorder) *mjmerge.Engine {
	opts := []mjmerge.Option{
		mjmerge.WithLogger(logger),
		mjmerge.WithSink(rec),
	}
	if scene.Output != "" {
		opts = append(opts, mjmerge.WithOutputPath(scene.Output))
	}
	if scene.Model != "" {
		opts = append(opts, mjmerge.WithModelName(scene.Model))
	}
	return mjmerge.New(opts...)
}
