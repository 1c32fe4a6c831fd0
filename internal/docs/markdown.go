package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// GenMarkdownTree writes one Markdown file per visible command into dir,
// named mandown_sub_command.md, with cross-links between them.
func GenMarkdownTree(cmd *cobra.Command, dir string) error {
	for _, c := range visibleCommands(cmd) {
		if err := GenMarkdownTree(c, dir); err != nil {
			return err
		}
	}

	name := markdownFilename(cmd)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	return GenMarkdown(cmd, f)
}

// GenMarkdown writes the Markdown reference for a single command.
func GenMarkdown(cmd *cobra.Command, w io.Writer) error {
	cmd.InitDefaultHelpCmd()
	cmd.InitDefaultHelpFlag()

	buf := new(bytes.Buffer)
	name := cmd.CommandPath()

	buf.WriteString("## " + name + "\n\n")
	if cmd.Short != "" {
		buf.WriteString(cmd.Short + "\n\n")
	}

	if cmd.Runnable() || cmd.HasAvailableSubCommands() {
		buf.WriteString("### Synopsis\n\n")
		if cmd.Long != "" {
			buf.WriteString(cmd.Long + "\n\n")
		}
		if cmd.Runnable() {
			buf.WriteString("```\n" + cmd.UseLine() + "\n```\n\n")
		}
	}

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, 0, len(cmd.Aliases)+1)
		for _, a := range append([]string{cmd.Name()}, cmd.Aliases...) {
			aliases = append(aliases, "`"+a+"`")
		}
		buf.WriteString("### Aliases\n\n")
		buf.WriteString(strings.Join(aliases, ", ") + "\n\n")
	}

	if cmd.Example != "" {
		buf.WriteString("### Examples\n\n")
		buf.WriteString("```\n" + cmd.Example + "\n```\n\n")
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("### Subcommands\n\n")
		for _, c := range subs {
			fmt.Fprintf(buf, "* [%s](%s) - %s\n", c.CommandPath(), markdownFilename(c), c.Short)
		}
		buf.WriteString("\n")
	}

	if flags := cmd.NonInheritedFlags(); flags.HasAvailableFlags() {
		buf.WriteString("### Options\n\n")
		buf.WriteString("```\n" + flags.FlagUsages() + "```\n\n")
	}

	if flags := cmd.InheritedFlags(); flags.HasAvailableFlags() {
		buf.WriteString("### Options inherited from parent commands\n\n")
		buf.WriteString("```\n" + flags.FlagUsages() + "```\n\n")
	}

	if cmd.HasParent() {
		parent := cmd.Parent()
		buf.WriteString("### See also\n\n")
		fmt.Fprintf(buf, "* [%s](%s) - %s\n", parent.CommandPath(), markdownFilename(parent), parent.Short)
	}

	_, err := buf.WriteTo(w)
	return err
}

func markdownFilename(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "_") + ".md"
}
