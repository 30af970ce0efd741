package merge

import (
	"slices"

	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/beevik/etree"
)

// reconcile copies the attributes of in that out lacks. When both carry an
// attribute with different values, out keeps its value and the disagreement
// is reported to sink. in is never modified; a nil in is a no-op.
func reconcile(sink diagnostics.Sink, section, file string, in, out *etree.Element, exclude ...string) {
	if in == nil {
		return
	}
	for _, attr := range in.Attr {
		key := attr.FullKey()
		if slices.Contains(exclude, key) {
			continue
		}
		existing := out.SelectAttr(key)
		if existing == nil {
			out.CreateAttr(key, attr.Value)
			continue
		}
		if existing.Value != attr.Value {
			sink.Report(diagnostics.Conflict{
				Section:   section,
				Attribute: key,
				File:      file,
				Incoming:  attr.Value,
				Retained:  existing.Value,
			})
		}
	}
}
