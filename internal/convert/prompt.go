package convert

import (
	"fmt"
	"strings"
)

// CanonicalSections is the section layout requested from the converter,
// in the conventional man-page order. The validator checks generated
// pages against the same ordering.
var CanonicalSections = []string{
	"NAME",
	"SYNOPSIS",
	"DESCRIPTION",
	"OPTIONS",
	"ARGUMENTS",
	"EXAMPLES",
	"EXIT STATUS",
	"RETURN VALUE",
	"ERRORS",
	"ENVIRONMENT",
	"FILES",
	"VERSIONS",
	"CONFORMING TO",
	"NOTES",
	"BUGS",
	"SEE ALSO",
	"HISTORY",
	"AUTHOR(S)",
	"COPYRIGHT",
}

// BuildPrompt returns the instruction handed to the external AI command.
// The README itself arrives on the command's stdin.
func BuildPrompt(meta Meta) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Convert the markdown README provided on standard input into a troff man page for the command %q, man section %s.\n\n", meta.Name, meta.Section)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Start with a .TH title header: .TH \"%s\" \"%s\" \"%s\" \"%s\"\n",
		strings.ToUpper(meta.Name), meta.Section, meta.Date.Format("January 2006"), meta.Source())
	b.WriteString("- Use .SH section headers, only for sections the README supports, in exactly this order:\n")
	fmt.Fprintf(&b, "  %s\n", strings.Join(CanonicalSections, ", "))
	b.WriteString("- NAME must contain a one-line summary: name \\- description\n")
	b.WriteString("- Escape troff control characters; do not wrap the output in markdown fences\n")
	b.WriteString("- Emit only the troff document, nothing else\n")

	return b.String()
}
