package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// element parses a standalone XML fragment.
func element(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

// writeModel writes content to dir/name and returns the absolute path.
func writeModel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

// newScene returns the root of an empty composite scene.
func newScene() *etree.Element {
	return mjcf.NewScene("test").Root()
}
