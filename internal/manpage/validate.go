package manpage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// sectionRank maps canonical section names to their conventional position.
// AUTHOR and AUTHORS share a rank.
var sectionRank = map[string]int{}

// canonicalOrder is the conventional man(1) section ordering.
var canonicalOrder = []string{
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
	"AUTHOR",
	"COPYRIGHT",
}

func init() {
	for i, name := range canonicalOrder {
		sectionRank[name] = i
	}
	// AUTHORS and AUTHOR(S) are spelling variants of AUTHOR
	sectionRank["AUTHORS"] = sectionRank["AUTHOR"]
	sectionRank["AUTHOR(S)"] = sectionRank["AUTHOR"]
}

// section is a .SH header extracted from a page.
type section struct {
	name string
	line int
}

// scanSections extracts .SH headers in file order. Quotes around the
// section name are stripped; names are uppercased for rank lookup.
func scanSections(r io.Reader) ([]section, bool, error) {
	var (
		sections []section
		hasTH    bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasPrefix(line, ".TH ") || line == ".TH" {
			hasTH = true
			continue
		}

		if strings.HasPrefix(line, ".SH") {
			name := strings.TrimSpace(strings.TrimPrefix(line, ".SH"))
			name = strings.Trim(name, `"`)
			if name == "" {
				continue
			}
			sections = append(sections, section{
				name: strings.ToUpper(name),
				line: lineNo,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return sections, hasTH, nil
}

// ValidateStructure checks a page for the required structural markers:
// a .TH title header and a NAME section are mandatory, SYNOPSIS and
// DESCRIPTION are merely expected.
func ValidateStructure(r io.Reader) (*Report, error) {
	sections, hasTH, err := scanSections(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	if !hasTH {
		report.Add(Error, 0, "missing title header (.TH)")
	}

	present := map[string]bool{}
	for _, s := range sections {
		present[s.name] = true
	}

	if !present["NAME"] {
		report.Add(Error, 0, "missing NAME section")
	}
	if !present["SYNOPSIS"] {
		report.Add(Warning, 0, "missing SYNOPSIS section")
	}
	if !present["DESCRIPTION"] {
		report.Add(Warning, 0, "missing DESCRIPTION section")
	}

	return report, nil
}

// ValidateFile runs the full check battery against a page on disk:
// structure, section order, and (with a non-empty renderCommand) the
// render check, merged into one report.
func ValidateFile(ctx context.Context, page, renderCommand string) (*Report, error) {
	f, err := os.Open(page)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", page, err)
	}
	defer f.Close()

	report, err := ValidateStructure(f)
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	order, err := CheckSectionOrder(f)
	if err != nil {
		return nil, err
	}
	report.Merge(order)

	if renderCommand != "" {
		render, err := RenderCheck(ctx, page, renderCommand)
		if err != nil {
			return nil, err
		}
		report.Merge(render)
	}

	return report, nil
}

// CheckSectionOrder warns for each known section appearing after a
// section of higher canonical rank. Unknown sections are ignored; nothing
// here is fatal. Re-running on the same input yields the same findings.
func CheckSectionOrder(r io.Reader) (*Report, error) {
	sections, _, err := scanSections(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	highest := -1
	highestName := ""
	for _, s := range sections {
		rank, known := sectionRank[s.name]
		if !known {
			continue
		}
		if rank < highest {
			report.Add(Warning, s.line, "section %s out of order (after %s)", s.name, highestName)
			continue
		}
		highest = rank
		highestName = s.name
	}

	return report, nil
}
