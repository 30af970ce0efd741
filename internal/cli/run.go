package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/mjmerge/internal/config"
	"github.com/aretw0/mjmerge/internal/presentation/tui"
	"github.com/aretw0/mjmerge/internal/validator"
	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/aretw0/mjmerge/pkg/mjcf"
)

// RunOptions contains all the configuration for the merge command.
type RunOptions struct {
	ConfigPath string   // scene manifest, optional
	Robots     []string // name=file arguments, appended after the manifest robots
	Output     string
	Model      string
	Verify     bool
	Report     bool
	Watch      bool
	Debug      bool

	Stdout io.Writer
}

func (o RunOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

// Execute handles the 'merge' command, dispatching to a single merge or watch mode.
func Execute(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if opts.Watch {
		sigCtx := NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return RunWatch(sigCtx, opts, logger)
	}

	scene, err := ResolveScene(opts)
	if err != nil {
		return err
	}
	_, err = RunMerge(context.Background(), opts, scene, logger)
	return err
}

// ResolveScene combines the manifest (if any) with the command line.
// Flags override manifest values; robot arguments are appended in order.
func ResolveScene(opts RunOptions) (*config.Scene, error) {
	scene := &config.Scene{}
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		scene = loaded
	}
	for _, arg := range opts.Robots {
		r, err := config.ParseRobot(arg)
		if err != nil {
			return nil, err
		}
		scene.Robots = append(scene.Robots, r)
	}
	if opts.Output != "" {
		scene.Output = opts.Output
	}
	if opts.Model != "" {
		scene.Model = opts.Model
	}
	if len(scene.Robots) == 0 {
		return nil, fmt.Errorf("no robots given: pass name=file arguments or --config")
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// RunMerge merges scene once, prints the resulting path and, when asked,
// verifies the namespaces of the result and prints a report.
func RunMerge(ctx context.Context, opts RunOptions, scene *config.Scene, logger *slog.Logger) (string, error) {
	out := opts.stdout()
	rec := &diagnostics.Recorder{}
	eng := createEngine(scene, logger, rec)

	path, err := eng.Merge(ctx, scene.Robots)
	if err != nil {
		return "", fmt.Errorf("merge failed: %w", err)
	}

	var verifyErr error
	if opts.Verify {
		verifyErr = CheckFile(path)
	}

	if opts.Report {
		report := tui.Report{
			Model:     scene.Model,
			Output:    path,
			Robots:    scene.Robots,
			Conflicts: rec.Conflicts(),
			Verified:  opts.Verify,
			VerifyErr: verifyErr,
		}
		if err := tui.PrintReport(out, report, isTerminal(out)); err != nil {
			logger.Warn("Report rendering failed", "err", err)
		}
	}

	fmt.Fprintln(out, path)
	if verifyErr != nil {
		return path, fmt.Errorf("merged scene has colliding names: %w", verifyErr)
	}
	return path, nil
}

// CheckFile loads a scene and checks it for colliding identifiers.
func CheckFile(path string) error {
	root, err := mjcf.Load(path)
	if err != nil {
		return err
	}
	return validator.CheckNamespaces(root)
}
