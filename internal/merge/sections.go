package merge

import (
	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/beevik/etree"
)

// sectionRule folds the in section of one model into the out section of the
// scene. in may be nil when the model does not declare the section.
type sectionRule func(m *modelMerge, in, out *etree.Element) error

// sections is the order sections are merged in for every model: assets before
// the bodies using them, defaults before the bodies referencing their classes.
var sections = []struct {
	tag  string
	rule sectionRule
}{
	{"compiler", mergeCompiler},
	{"size", mergeSize},
	{"option", mergeOption},
	{"default", mergeDefault},
	{"visual", mergeVisual},
	{"asset", mergeAsset},
	{"contact", mergeContact},
	{"actuator", mergeActuator},
	{"sensor", mergeSensor},
	{"worldbody", mergeWorldbody},
}

// Sections returns the section tags carried into a merged scene, in merge order.
// Anything else a model declares (equality, tendon, keyframe, ...) is dropped.
func Sections() []string {
	tags := make([]string, len(sections))
	for i, s := range sections {
		tags[i] = s.tag
	}
	return tags
}

func mergeCompiler(m *modelMerge, in, out *etree.Element) error {
	reconcile(m.sink, "compiler", m.file, in, out, attrMeshDir, attrTextureDir, attrAssetDir)
	return nil
}

func mergeSize(_ *modelMerge, in, out *etree.Element) error {
	accumulateCounts(in, out)
	return nil
}

func mergeOption(m *modelMerge, in, out *etree.Element) error {
	if in == nil {
		return nil
	}
	reconcile(m.sink, "option", m.file, in, out)
	if flag := in.SelectElement("flag"); flag != nil {
		reconcile(m.sink, "option/flag", m.file, flag, mjcf.ChildOrCreate(out, "flag"))
	}
	return nil
}

func mergeDefault(m *modelMerge, in, out *etree.Element) error {
	if in == nil {
		return nil
	}
	for _, child := range in.ChildElements() {
		if child.Tag == "default" {
			class := child.Copy()
			prefixRecursive(m.robot, class, identifierAttrs["default"])
			out.AddChild(class)
			continue
		}
		reconcile(m.sink, "default/"+child.Tag, m.file, child, mjcf.ChildOrCreate(out, child.Tag))
	}
	return nil
}

func mergeVisual(m *modelMerge, in, out *etree.Element) error {
	if in == nil {
		return nil
	}
	for _, child := range in.ChildElements() {
		reconcile(m.sink, "visual/"+child.Tag, m.file, child, mjcf.ChildOrCreate(out, child.Tag))
	}
	return nil
}

func mergeAsset(m *modelMerge, in, out *etree.Element) error {
	if in == nil {
		return nil
	}
	copyAll(m, in, out, "hfield", identifierAttrs["asset/hfield"])
	for _, skin := range copyAll(m, in, out, "skin", identifierAttrs["asset/skin"]) {
		if err := rewriteFileReference(skin, m.meshDir); err != nil {
			return err
		}
		for _, bone := range skin.SelectElements("bone") {
			prefixAll(m.robot, bone, identifierAttrs["asset/skin/bone"])
		}
	}
	copyAll(m, in, out, "material", identifierAttrs["asset/material"])
	for _, texture := range copyAll(m, in, out, "texture", identifierAttrs["asset/texture"]) {
		if err := rewriteFileReference(texture, m.textureDir); err != nil {
			return err
		}
	}
	for _, mesh := range copyAll(m, in, out, "mesh", identifierAttrs["asset/mesh"]) {
		if err := rewriteFileReference(mesh, m.meshDir); err != nil {
			return err
		}
	}
	return nil
}

func mergeContact(m *modelMerge, in, out *etree.Element) error {
	if in == nil {
		return nil
	}
	copyAll(m, in, out, "pair", identifierAttrs["contact/pair"])
	copyAll(m, in, out, "exclude", identifierAttrs["contact/exclude"])
	return nil
}

func mergeActuator(m *modelMerge, in, out *etree.Element) error {
	copyChildren(m, in, out, identifierAttrs["actuator"], false)
	return nil
}

func mergeSensor(m *modelMerge, in, out *etree.Element) error {
	copyChildren(m, in, out, identifierAttrs["sensor"], false)
	return nil
}

func mergeWorldbody(m *modelMerge, in, out *etree.Element) error {
	copyChildren(m, in, out, identifierAttrs["worldbody"], true)
	return nil
}

// copyAll appends a copy of every tag child of in to out, prefixing attrs on
// each copy, and returns the copies.
func copyAll(m *modelMerge, in, out *etree.Element, tag string, attrs []string) []*etree.Element {
	var copies []*etree.Element
	for _, el := range in.SelectElements(tag) {
		c := el.Copy()
		prefixAll(m.robot, c, attrs)
		out.AddChild(c)
		copies = append(copies, c)
	}
	return copies
}

// copyChildren appends a copy of every child element of in to out, prefixing
// attrs on the copy itself or, when deep is set, on the whole copied subtree.
func copyChildren(m *modelMerge, in, out *etree.Element, attrs []string, deep bool) {
	if in == nil {
		return
	}
	for _, el := range in.ChildElements() {
		c := el.Copy()
		if deep {
			prefixRecursive(m.robot, c, attrs)
		} else {
			prefixAll(m.robot, c, attrs)
		}
		out.AddChild(c)
	}
}
