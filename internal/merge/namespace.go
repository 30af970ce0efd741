package merge

import "github.com/beevik/etree"

// identifierAttrs maps an element kind to the attributes that name or reference
// other elements of the same model. These are rewritten with the robot prefix.
// The lists are not derivable from element shape; keep them here as data.
var identifierAttrs = map[string][]string{
	"default":         {"class", "material", "hfield", "mesh", "target"},
	"asset/hfield":    {"name"},
	"asset/skin":      {"name"},
	"asset/skin/bone": {"body"},
	"asset/material":  {"name", "texture"},
	"asset/texture":   {"name"},
	"asset/mesh":      {"name"},
	"contact/pair":    {"name", "class", "geom1", "geom2"},
	"contact/exclude": {"name", "body1", "body2"},
	"actuator":        {"name", "class", "joint", "jointinparent", "site", "tendon", "cranksite", "slidersite"},
	"sensor":          {"name", "site", "joint", "actuator", "tendon", "objname", "body"},
	"worldbody":       {"name", "childclass", "class", "material", "hfield", "mesh", "target"},
}

// IdentifierAttributes returns the attributes namespaced for kind, or nil.
func IdentifierAttributes(kind string) []string {
	attrs := identifierAttrs[kind]
	if attrs == nil {
		return nil
	}
	out := make([]string, len(attrs))
	copy(out, attrs)
	return out
}

// prefix rewrites el's attr, when present, to "<identity>_<value>".
func prefix(identity string, el *etree.Element, attr string) {
	if a := el.SelectAttr(attr); a != nil {
		a.Value = identity + "_" + a.Value
	}
}

// prefixAll applies prefix for every attribute in attrs to el only.
func prefixAll(identity string, el *etree.Element, attrs []string) {
	for _, attr := range attrs {
		prefix(identity, el, attr)
	}
}

// prefixRecursive applies prefixAll to el and every element below it.
func prefixRecursive(identity string, el *etree.Element, attrs []string) {
	prefixAll(identity, el, attrs)
	for _, child := range el.ChildElements() {
		prefixRecursive(identity, child, attrs)
	}
}
