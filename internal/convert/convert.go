// Package convert turns README markdown into troff man pages.
//
// The primary implementation shells out to an external AI command; a
// deterministic md2man fallback exists for offline use and tests. Both
// sit behind the Converter interface so commands never care which one
// they were handed.
package convert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schmitthub/mandown/internal/config"
)

// Converter produces troff text from README markdown.
type Converter interface {
	// Name identifies the converter in logs and messages.
	Name() string

	// Convert transforms README content into a troff man page.
	Convert(ctx context.Context, readme []byte) ([]byte, error)
}

// Meta carries title-header metadata for the generated page.
type Meta struct {
	// Name is the command name the page documents.
	Name string
	// Section is the man section, normally "1".
	Section string
	// Version labels the page source, e.g. a git tag.
	Version string
	// Date is the page date, usually the last commit time.
	Date time.Time
}

// Source returns the title-header source field ("name version").
func (m Meta) Source() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + " " + m.Version
}

// ConversionError reports a converter process failure or empty output.
type ConversionError struct {
	Converter string
	Stderr    string
	Err       error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("converter %q failed", e.Converter)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// New builds the named converter from settings. An empty name selects the
// external AI command when one is configured, otherwise the fallback.
func New(name string, settings *config.Settings, meta Meta) (Converter, error) {
	if meta.Section == "" {
		meta.Section = "1"
	}

	if name == "" {
		if settings.Convert.Command != "" {
			name = "claude"
		} else {
			name = settings.Convert.Fallback
		}
	}

	switch name {
	case "claude":
		return NewCommandConverter(settings.Convert.Command, meta)
	case "md2man":
		return NewMD2ManConverter(meta), nil
	default:
		return nil, fmt.Errorf("unknown converter %q (expected claude or md2man)", name)
	}
}
