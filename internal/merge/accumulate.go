package merge

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// sizeCounters are the <size> attributes that scale with the number of robots.
var sizeCounters = []string{
	"njmax", "nconmax", "nstack", "nuserdata", "nkey",
	"nuser_body", "nuser_jnt", "nuser_geom", "nuser_site", "nuser_cam",
	"nuser_tendon", "nuser_actuator", "nuser_sensor",
}

// accumulateCounts sums the resource budgets of in into out. Attributes outside
// sizeCounters are ignored.
func accumulateCounts(in, out *etree.Element) {
	if in == nil {
		return
	}
	for _, name := range sizeCounters {
		attr := in.SelectAttr(name)
		if attr == nil {
			continue
		}
		existing := out.SelectAttr(name)
		if existing == nil {
			out.CreateAttr(name, attr.Value)
			continue
		}
		existing.Value = strconv.Itoa(asInt(existing.Value) + asInt(attr.Value))
	}
}

// asInt parses the leading integer of s, 0 when there is none.
func asInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c == '-' || c == '+') && end == 0 {
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
