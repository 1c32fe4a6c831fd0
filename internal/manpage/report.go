// Package manpage validates, renders, and installs generated man pages.
package manpage

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding.
type Severity int

const (
	// Warning findings never fail validation.
	Warning Severity = iota
	// Error findings fail validation.
	Error
)

// String returns the severity label used in reports.
func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding is a single validation result.
type Finding struct {
	Severity Severity
	Line     int // 1-based, 0 when the finding has no line
	Message  string
}

// String formats a finding for display.
func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", f.Severity, f.Line, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

// Report aggregates validation findings for one page.
type Report struct {
	Findings []Finding
}

// Add appends a finding.
func (r *Report) Add(sev Severity, line int, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends all findings of another report.
func (r *Report) Merge(other *Report) {
	r.Findings = append(r.Findings, other.Findings...)
}

// ErrorCount returns the number of error findings.
func (r *Report) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == Error {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning findings.
func (r *Report) WarningCount() int {
	return len(r.Findings) - r.ErrorCount()
}

// Ok reports whether validation succeeded: zero errors.
// Warnings never fail the run.
func (r *Report) Ok() bool {
	return r.ErrorCount() == 0
}

// Summary returns a one-line count summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", r.ErrorCount(), r.WarningCount())
}

// String formats the whole report, one finding per line.
func (r *Report) String() string {
	lines := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}
