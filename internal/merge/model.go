// Package merge folds MJCF models, one robot at a time, into a composite scene.
//
// Shared settings (compiler, option, visual, non-class defaults) are merged by
// attribute union where the first model to set a value wins; budgets in <size>
// are summed; everything else is copied with its identifiers prefixed by the
// robot name so that independently authored models cannot collide.
package merge

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/beevik/etree"
)

// Merger folds models into a scene root. It holds no per-call state.
type Merger struct {
	sink   diagnostics.Sink
	logger *slog.Logger
}

// New creates a Merger reporting conflicts to sink. Nil arguments fall back to
// a discarding sink and logger.
func New(sink diagnostics.Sink, logger *slog.Logger) *Merger {
	if sink == nil {
		sink = diagnostics.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Merger{sink: sink, logger: logger}
}

// modelMerge is the context of folding one model.
type modelMerge struct {
	robot      string
	file       string
	meshDir    string
	textureDir string
	sink       diagnostics.Sink
}

// MergeFile loads the model at file and folds it into scene under robot's namespace.
func (m *Merger) MergeFile(robot, file string, scene *etree.Element) error {
	root, err := mjcf.Load(file)
	if err != nil {
		return err
	}
	return m.MergeModel(robot, file, root, scene)
}

// MergeModel folds the <mujoco> element in, loaded from file, into scene.
// in is only read; scene receives deep copies.
func (m *Merger) MergeModel(robot, file string, in, scene *etree.Element) error {
	meshDir, err := resolveAssetDirectory(file, in, attrMeshDir)
	if err != nil {
		return fmt.Errorf("failed to resolve mesh directory of %s: %w", file, err)
	}
	textureDir, err := resolveAssetDirectory(file, in, attrTextureDir)
	if err != nil {
		return fmt.Errorf("failed to resolve texture directory of %s: %w", file, err)
	}
	mm := &modelMerge{
		robot:      robot,
		file:       file,
		meshDir:    meshDir,
		textureDir: textureDir,
		sink:       m.sink,
	}

	m.logger.Debug("Merging model", "robot", robot, "file", file, "meshdir", meshDir, "texturedir", textureDir)
	for _, s := range sections {
		out := mjcf.ChildOrCreate(scene, s.tag)
		if err := s.rule(mm, in.SelectElement(s.tag), out); err != nil {
			return fmt.Errorf("failed to merge %s of %s: %w", s.tag, file, err)
		}
	}
	return nil
}
