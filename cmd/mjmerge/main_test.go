package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/mjmerge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	robots := testutils.ConflictingPair(t)
	output := filepath.Join(t.TempDir(), "scene.xml")

	out, err := run(t, "merge", "a="+robots[0].File, "b="+robots[1].File, "-o", output, "--model", "duo")
	require.NoError(t, err)
	assert.Equal(t, output, strings.TrimSpace(out))

	out, err = run(t, "check", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Scene is valid!")

	out, err = run(t, "graph", output, "--robot", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "b_base")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mjmerge version dev")
}

func TestMerge_ExampleScene(t *testing.T) {
	output := filepath.Join(t.TempDir(), "two_arms.xml")

	out, err := run(t, "merge", "--config", "../../examples/two-arms/scene.yaml", "-o", output, "--verify")
	require.NoError(t, err)
	assert.Equal(t, output, strings.TrimSpace(out))

	out, err = run(t, "graph", output, "--robot", "gripper")
	require.NoError(t, err)
	assert.Contains(t, out, "left_link1")
	assert.Contains(t, out, "right_link1")
	assert.Contains(t, out, "class gripper_palm robot;")
}

func TestMerge_RequiresRobots(t *testing.T) {
	// rootCmd is shared, so clear the manifest a previous test may have set.
	_, err := run(t, "merge", "--config", "", "-o", filepath.Join(t.TempDir(), "x.xml"))
	assert.Error(t, err)
}
