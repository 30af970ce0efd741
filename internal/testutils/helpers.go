package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/mjmerge"
	"github.com/stretchr/testify/require"
)

// WriteModel writes an MJCF document to dir/name and returns its absolute path.
// It fails the test immediately on error.
func WriteModel(t *testing.T, dir, name, content string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join(dir, name))
	require.NoError(t, err, "Failed to get absolute path for model")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write model")

	return path
}

// ConflictingPair writes two small models to a temporary directory. Both
// declare a body named "base" and disagree on option/timestep (0.001 for "a",
// 0.002 for "b").
func ConflictingPair(t *testing.T) []mjmerge.Robot {
	t.Helper()

	dir := t.TempDir()
	a := WriteModel(t, dir, "a.xml", `<mujoco><option timestep="0.001"/><worldbody><body name="base"/></worldbody></mujoco>`)
	b := WriteModel(t, dir, "b.xml", `<mujoco><option timestep="0.002"/><worldbody><body name="base"/></worldbody></mujoco>`)

	return []mjmerge.Robot{{Name: "a", File: a}, {Name: "b", File: b}}
}
