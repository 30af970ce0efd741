package validator

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// worldbodyNamespaces maps kinematic tree tags to the namespace of their name.
var worldbodyNamespaces = map[string]string{
	"body":      "body",
	"joint":     "joint",
	"freejoint": "joint",
	"geom":      "geom",
	"site":      "site",
	"camera":    "camera",
	"light":     "light",
}

// DuplicateError is one identifier declared more than once in a namespace.
type DuplicateError struct {
	Namespace string
	Name      string
	Count     int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q declared %d times", e.Namespace, e.Name, e.Count)
}

// AggregateError collects every finding of a check.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Errors), strings.Join(lines, "\n- "))
}

// Findings returns the individual errors if err is an AggregateError, else nil.
func Findings(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

type registry struct {
	counts map[string]map[string]int
	order  []DuplicateError
}

func (r *registry) declare(namespace, name string) {
	if name == "" {
		return
	}
	names, ok := r.counts[namespace]
	if !ok {
		names = make(map[string]int)
		r.counts[namespace] = names
	}
	names[name]++
	if names[name] == 1 {
		r.order = append(r.order, DuplicateError{Namespace: namespace, Name: name})
	}
}

// CheckNamespaces reports every identifier that is declared twice in the same
// namespace of a <mujoco> scene: bodies, joints, geoms, sites, cameras and
// lights of the kinematic tree, each asset kind, actuators, sensors, default
// classes and contact rules. Unnamed elements are ignored.
func CheckNamespaces(root *etree.Element) error {
	r := &registry{counts: make(map[string]map[string]int)}

	if def := root.SelectElement("default"); def != nil {
		walk(def, func(el *etree.Element) {
			if el.Tag == "default" {
				r.declare("default class", el.SelectAttrValue("class", ""))
			}
		})
	}
	if asset := root.SelectElement("asset"); asset != nil {
		for _, el := range asset.ChildElements() {
			r.declare(el.Tag, el.SelectAttrValue("name", ""))
		}
	}
	if contact := root.SelectElement("contact"); contact != nil {
		for _, el := range contact.ChildElements() {
			r.declare("contact "+el.Tag, el.SelectAttrValue("name", ""))
		}
	}
	for _, section := range []string{"actuator", "sensor"} {
		if s := root.SelectElement(section); s != nil {
			for _, el := range s.ChildElements() {
				r.declare(section, el.SelectAttrValue("name", ""))
			}
		}
	}
	if world := root.SelectElement("worldbody"); world != nil {
		for _, top := range world.ChildElements() {
			walk(top, func(el *etree.Element) {
				if ns, ok := worldbodyNamespaces[el.Tag]; ok {
					r.declare(ns, el.SelectAttrValue("name", ""))
				}
			})
		}
	}

	var errs []error
	for _, d := range r.order {
		if n := r.counts[d.Namespace][d.Name]; n > 1 {
			errs = append(errs, &DuplicateError{Namespace: d.Namespace, Name: d.Name, Count: n})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}
