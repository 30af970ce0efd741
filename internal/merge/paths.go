package merge

import (
	"path/filepath"

	"github.com/beevik/etree"
)

// Compiler attributes holding asset directories. They are resolved per model
// and never copied onto the shared <compiler>.
const (
	attrMeshDir    = "meshdir"
	attrTextureDir = "texturedir"
	attrAssetDir   = "assetdir"
)

// resolveAssetDirectory returns the absolute directory that relative asset
// files of the model at file are looked up in: compiler/@attr, then
// compiler/@assetdir, then the directory holding file. Relative directories
// are taken relative to the model file.
func resolveAssetDirectory(file string, root *etree.Element, attr string) (string, error) {
	base := filepath.Dir(file)
	dir := ""
	if compiler := root.SelectElement("compiler"); compiler != nil {
		dir = compiler.SelectAttrValue(attr, "")
		if dir == "" {
			dir = compiler.SelectAttrValue(attrAssetDir, "")
		}
	}
	switch {
	case dir == "":
		dir = base
	case !filepath.IsAbs(dir):
		dir = filepath.Join(base, dir)
	}
	return filepath.Abs(dir)
}

// rewriteFileReference makes a relative el/@file absolute against dir.
// Absolute values are left alone.
func rewriteFileReference(el *etree.Element, dir string) error {
	attr := el.SelectAttr("file")
	if attr == nil || filepath.IsAbs(attr.Value) {
		return nil
	}
	abs, err := filepath.Abs(filepath.Join(dir, attr.Value))
	if err != nil {
		return err
	}
	attr.Value = abs
	return nil
}
