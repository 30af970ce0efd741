// Package config loads scene manifests: the list of robots to merge plus the
// output location, in YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/mjmerge"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateRobot is returned when two robots of a scene share a name.
var ErrDuplicateRobot = errors.New("duplicate robot name")

// Scene is the content of a scene manifest (scene.yaml).
type Scene struct {
	Model  string          `yaml:"model,omitempty" json:"model,omitempty"`
	Output string          `yaml:"output,omitempty" json:"output,omitempty"`
	Robots []mjmerge.Robot `yaml:"robots" json:"robots"`
}

// Load reads a manifest (JSON when the extension is .json, YAML otherwise).
// Relative robot files and output are resolved against the manifest directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	var scene Scene
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	base := filepath.Dir(path)
	for i := range scene.Robots {
		scene.Robots[i].File = resolve(base, scene.Robots[i].File)
	}
	if scene.Output != "" {
		scene.Output = resolve(base, scene.Output)
	}

	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}
	return &scene, nil
}

// Validate checks that every robot has a name and a file, and that names are unique.
func (s *Scene) Validate() error {
	seen := make(map[string]int, len(s.Robots))
	for i, r := range s.Robots {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("robot[%d]: name is required", i)
		}
		if strings.TrimSpace(r.File) == "" {
			return fmt.Errorf("robot[%d] %q: file is required", i, r.Name)
		}
		if j, ok := seen[r.Name]; ok {
			return fmt.Errorf("robot[%d] and robot[%d]: %w %q", j, i, ErrDuplicateRobot, r.Name)
		}
		seen[r.Name] = i
	}
	return nil
}

// ParseRobot parses a "name=file" command line argument.
func ParseRobot(arg string) (mjmerge.Robot, error) {
	name, file, ok := strings.Cut(arg, "=")
	name, file = strings.TrimSpace(name), strings.TrimSpace(file)
	if !ok || name == "" || file == "" {
		return mjmerge.Robot{}, fmt.Errorf("invalid robot %q, expected name=file", arg)
	}
	return mjmerge.Robot{Name: name, File: file}, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
