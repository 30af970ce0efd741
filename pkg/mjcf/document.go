package mjcf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// RootTag is the tag every MJCF model file is rooted at.
const RootTag = "mujoco"

// DefaultIndent is the number of spaces used per nesting level when saving.
const DefaultIndent = 4

// ErrMissingRoot is returned when a file parses but has no <mujoco> root element.
var ErrMissingRoot = errors.New("no mujoco root node")

// Load reads and parses the model file at path and returns its <mujoco> root.
// The returned element belongs to a private document and may be copied freely.
func Load(path string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return rootOf(doc, path)
}

// Parse is Load for in-memory content. name is only used in error messages.
func Parse(name string, data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return rootOf(doc, name)
}

func rootOf(doc *etree.Document, name string) (*etree.Element, error) {
	root := doc.SelectElement(RootTag)
	if root == nil {
		return nil, fmt.Errorf("%w in %s", ErrMissingRoot, name)
	}
	return root, nil
}

// NewScene creates an empty composite document whose root is <mujoco model="...">.
func NewScene(model string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	root := doc.CreateElement(RootTag)
	root.CreateAttr("model", model)
	return doc
}

// Save writes doc to path, indented with DefaultIndent spaces.
// The parent directory is created if needed.
func Save(doc *etree.Document, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to ensure output directory: %w", err)
		}
	}
	doc.Indent(DefaultIndent)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ChildOrCreate returns the first child of parent tagged tag, appending a new
// empty one if there is none.
func ChildOrCreate(parent *etree.Element, tag string) *etree.Element {
	if child := parent.SelectElement(tag); child != nil {
		return child
	}
	return parent.CreateElement(tag)
}
