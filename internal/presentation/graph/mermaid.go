package graph

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Overlay highlights part of the tree.
type Overlay struct {
	Robot string // bodies named "<Robot>_..." are highlighted
}

// GenerateMermaid produces a Mermaid flowchart of the kinematic tree under
// root's <worldbody>. It applies semantic styling:
// - World: ((Circle))
// - Floating body (freejoint): [/Parallelogram/]
// - Default: [Rectangle]
// Edges are labelled with the joints of the child body.
func GenerateMermaid(root *etree.Element, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    world((\"world\"))\n")

	g := &generator{sb: &sb, ids: make(map[string]int)}
	if world := root.SelectElement("worldbody"); world != nil {
		for _, body := range world.SelectElements("body") {
			g.body(body, "world")
		}
	}

	if overlay != nil && overlay.Robot != "" && len(g.bodies) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef robot fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, b := range g.bodies {
			if strings.HasPrefix(b.name, overlay.Robot+"_") {
				sb.WriteString(fmt.Sprintf("    class %s robot;\n", b.id))
			}
		}
	}

	return sb.String()
}

type node struct {
	id   string
	name string
}

type generator struct {
	sb     *strings.Builder
	ids    map[string]int
	bodies []node
}

func (g *generator) body(el *etree.Element, parentID string) {
	name := el.SelectAttrValue("name", "")
	id := g.uniqueID(name)
	g.bodies = append(g.bodies, node{id: id, name: name})

	label := name
	if label == "" {
		label = "(unnamed)"
	}
	opener, closer := "[", "]"
	var joints []string
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "freejoint":
			opener, closer = "[/", "/]"
			joints = append(joints, jointLabel(child, "free"))
		case "joint":
			joints = append(joints, jointLabel(child, child.SelectAttrValue("type", "hinge")))
		}
	}
	g.sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

	arrow := "-->"
	if len(joints) > 0 {
		// Escape double quotes for Mermaid label
		safe := strings.ReplaceAll(strings.Join(joints, ", "), "\"", "'")
		arrow = fmt.Sprintf("-- \"%s\" -->", safe)
	}
	g.sb.WriteString(fmt.Sprintf("    %s %s %s\n", parentID, arrow, id))

	for _, child := range el.SelectElements("body") {
		g.body(child, id)
	}
}

func jointLabel(el *etree.Element, kind string) string {
	if name := el.SelectAttrValue("name", ""); name != "" {
		return name + " (" + kind + ")"
	}
	return kind
}

// uniqueID sanitizes name and disambiguates repeats (and unnamed bodies).
func (g *generator) uniqueID(name string) string {
	base := sanitizeMermaidID(name)
	if base == "" {
		base = "body"
	}
	g.ids[base]++
	if n := g.ids[base]; n > 1 || name == "" {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
