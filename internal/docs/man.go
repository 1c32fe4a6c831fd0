// Package docs generates reference documentation for the mandown command
// tree, as man pages and as Markdown.
package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ManHeader carries title-header metadata for generated pages.
type ManHeader struct {
	Title   string
	Section string
	Date    *time.Time
	Source  string
	Manual  string
}

// GenManTree writes one man page per visible command into dir, named
// mandown-sub-command.1.
func GenManTree(cmd *cobra.Command, dir string) error {
	header := &ManHeader{
		Section: "1",
		Source:  "Mandown",
		Manual:  "Mandown Manual",
	}

	for _, c := range visibleCommands(cmd) {
		if err := GenManTree(c, dir); err != nil {
			return err
		}
	}

	name := strings.ReplaceAll(cmd.CommandPath(), " ", "-") + "." + header.Section
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	return GenMan(cmd, header, f)
}

// GenMan writes the man page for a single command. The page is composed
// as pandoc-style markdown and rendered to troff with md2man.
func GenMan(cmd *cobra.Command, header *ManHeader, w io.Writer) error {
	if header == nil {
		header = &ManHeader{}
	}
	if header.Section == "" {
		header.Section = "1"
	}

	_, err := w.Write(md2man.Render(manMarkdown(cmd, header)))
	return err
}

func manMarkdown(cmd *cobra.Command, header *ManHeader) []byte {
	cmd.InitDefaultHelpCmd()
	cmd.InitDefaultHelpFlag()

	buf := new(bytes.Buffer)
	name := cmd.CommandPath()

	title := header.Title
	if title == "" {
		title = strings.ToUpper(strings.ReplaceAll(name, " ", "-"))
	}
	date := ""
	if header.Date != nil {
		date = header.Date.Format("Jan 2006")
	}
	fmt.Fprintf(buf, "%% %s(%s) %s | %s\n\n", title, header.Section, date, header.Manual)

	buf.WriteString("# NAME\n")
	short := cmd.Short
	if short == "" {
		short = "manual page for " + name
	}
	fmt.Fprintf(buf, "%s \\- %s\n\n", name, short)

	buf.WriteString("# SYNOPSIS\n")
	buf.WriteString("**" + name + "**")
	if cmd.NonInheritedFlags().HasAvailableFlags() {
		buf.WriteString(" [OPTIONS]")
	}
	if cmd.HasAvailableSubCommands() {
		buf.WriteString(" COMMAND")
	}
	buf.WriteString("\n\n")

	if cmd.Long != "" {
		buf.WriteString("# DESCRIPTION\n")
		buf.WriteString(cmd.Long + "\n\n")
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("# COMMANDS\n")
		for _, c := range subs {
			fmt.Fprintf(buf, "**%s**\n: %s\n\n", c.Name(), c.Short)
		}
	}

	manOptions(buf, cmd)

	if cmd.Example != "" {
		buf.WriteString("# EXAMPLES\n")
		buf.WriteString("```\n" + cmd.Example + "\n```\n\n")
	}

	manSeeAlso(buf, cmd, header.Section)

	return buf.Bytes()
}

func manOptions(buf *bytes.Buffer, cmd *cobra.Command) {
	local := cmd.NonInheritedFlags()
	inherited := cmd.InheritedFlags()
	if !local.HasAvailableFlags() && !inherited.HasAvailableFlags() {
		return
	}

	buf.WriteString("# OPTIONS\n")
	manFlags(buf, local)
	manFlags(buf, inherited)
	buf.WriteString("\n")
}

func manFlags(buf *bytes.Buffer, flags *pflag.FlagSet) {
	var list []*pflag.Flag
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			list = append(list, f)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	for _, f := range list {
		var spec string
		if f.Shorthand != "" {
			spec = fmt.Sprintf("**-%s**, **--%s**", f.Shorthand, f.Name)
		} else {
			spec = fmt.Sprintf("**--%s**", f.Name)
		}
		if t := f.Value.Type(); t != "bool" {
			spec += fmt.Sprintf(" <%s>", t)
		}

		buf.WriteString(spec + "\n")
		buf.WriteString(": " + f.Usage)
		if d := f.DefValue; d != "" && d != "false" && d != "0" && d != "[]" {
			fmt.Fprintf(buf, " (default: %s)", d)
		}
		buf.WriteString("\n\n")
	}
}

func manSeeAlso(buf *bytes.Buffer, cmd *cobra.Command, section string) {
	var refs []string
	ref := func(c *cobra.Command) string {
		return fmt.Sprintf("**%s(%s)**", strings.ReplaceAll(c.CommandPath(), " ", "-"), section)
	}

	if cmd.HasParent() {
		parent := cmd.Parent()
		refs = append(refs, ref(parent))
		for _, s := range visibleCommands(parent) {
			if s.Name() != cmd.Name() {
				refs = append(refs, ref(s))
			}
		}
	}
	for _, c := range visibleCommands(cmd) {
		refs = append(refs, ref(c))
	}

	if len(refs) == 0 {
		return
	}
	buf.WriteString("# SEE ALSO\n")
	buf.WriteString(strings.Join(refs, ", ") + "\n")
}

// visibleCommands returns the non-hidden, non-help subcommands.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "help" {
			continue
		}
		out = append(out, c)
	}
	return out
}
