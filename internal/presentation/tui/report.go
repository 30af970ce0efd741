package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/mjmerge"
	"github.com/aretw0/mjmerge/internal/validator"
	"github.com/aretw0/mjmerge/pkg/diagnostics"
)

// Report summarizes one merge.
type Report struct {
	Model     string
	Output    string
	Robots    []mjmerge.Robot
	Conflicts []diagnostics.Conflict
	Verified  bool
	VerifyErr error
}

// Markdown renders the report as markdown.
func (r Report) Markdown() string {
	var sb strings.Builder
	model := r.Model
	if model == "" {
		model = mjmerge.DefaultModelName
	}
	fmt.Fprintf(&sb, "# Scene `%s`\n\n", model)
	fmt.Fprintf(&sb, "Output: `%s`\n\n", r.Output)

	sb.WriteString("## Robots\n\n| # | Name | File |\n|---|------|------|\n")
	for i, robot := range r.Robots {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", i+1, cell(robot.Name), code(robot.File))
	}

	sb.WriteString("\n## Conflicts\n\n")
	if len(r.Conflicts) == 0 {
		sb.WriteString("None.\n")
	} else {
		sb.WriteString("The first loaded value prevails.\n\n")
		sb.WriteString("| Section | Attribute | Kept | Ignored | From |\n|---|---|---|---|---|\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", cell(c.Section), cell(c.Attribute), code(c.Retained), code(c.Incoming), code(c.File))
		}
	}

	if r.Verified {
		sb.WriteString("\n## Namespaces\n\n")
		if r.VerifyErr == nil {
			sb.WriteString("No colliding identifiers.\n")
		} else if findings := validator.Findings(r.VerifyErr); findings != nil {
			for _, f := range findings {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		} else {
			fmt.Fprintf(&sb, "- %s\n", r.VerifyErr)
		}
	}
	return sb.String()
}

// PrintReport writes the report to w, rendered for the terminal when styled is set.
func PrintReport(w io.Writer, r Report, styled bool) error {
	md := r.Markdown()
	if styled {
		rendered, err := NewRenderer()(md)
		if err != nil {
			return err
		}
		md = rendered
	}
	_, err := io.WriteString(w, md)
	return err
}

// cell escapes the pipes that would otherwise split a table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// code renders s as an inline code span inside a table cell. Values holding a
// backtick get a double-backtick fence.
func code(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + cell(s) + " ``"
	}
	return "`" + cell(s) + "`"
}
