package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cpuguy83/go-md2man/v2/md2man"
)

// MD2ManConverter renders the README markdown to troff deterministically.
// It is the offline fallback: no external process, no network, stable
// output, which also makes it the converter of choice in tests. The page
// quality is bounded by how man-page-shaped the README already is.
type MD2ManConverter struct {
	meta Meta
}

// NewMD2ManConverter creates the fallback converter.
func NewMD2ManConverter(meta Meta) *MD2ManConverter {
	return &MD2ManConverter{meta: meta}
}

// Name implements Converter.
func (c *MD2ManConverter) Name() string {
	return "md2man"
}

// Convert implements Converter. A pandoc-style title line is prepended so
// the output always carries a .TH header, and a NAME section is
// synthesized from the README's first paragraph.
func (c *MD2ManConverter) Convert(_ context.Context, readme []byte) ([]byte, error) {
	buf := new(bytes.Buffer)

	// Title line becomes the .TH header
	fmt.Fprintf(buf, "%% %s(%s) %s | %s\n\n",
		strings.ToUpper(c.meta.Name),
		c.meta.Section,
		c.meta.Date.Format("Jan 2006"),
		c.meta.Source(),
	)

	// NAME section
	buf.WriteString("# NAME\n")
	fmt.Fprintf(buf, "%s \\- %s\n\n", c.meta.Name, shortDescription(readme, c.meta.Name))

	buf.Write(readme)

	return md2man.Render(buf.Bytes()), nil
}

// shortDescription extracts a one-line summary from the README: the first
// plain paragraph line that is not a heading, badge, or code fence.
func shortDescription(readme []byte, name string) string {
	inFence := false
	for _, line := range strings.Split(string(readme), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence || trimmed == "" {
			continue
		}
		switch trimmed[0] {
		case '#', '!', '[', '<', '>', '-', '*', '|':
			continue
		}
		// Cut at the first sentence boundary to keep NAME terse.
		if idx := strings.Index(trimmed, ". "); idx > 0 {
			trimmed = trimmed[:idx]
		}
		return strings.TrimSuffix(trimmed, ".")
	}
	return "manual page for " + name
}
