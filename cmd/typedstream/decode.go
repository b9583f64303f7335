package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	ts "github.com/dgelessus-go/typedstream"
	"github.com/dgelessus-go/typedstream/prettyprint"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Unarchive to the high-level object model and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadedConfig(cmd); err != nil {
			return &runError{err}
		}

		src, closeSrc, err := openArg(args)
		if err != nil {
			return &runError{err}
		}
		defer closeSrc()

		r, err := ts.NewReader(src)
		if err != nil {
			return &runError{err}
		}
		defer r.Close()

		u := ts.NewUnarchiver(r)
		root, err := u.DecodeSingleRoot()
		if err != nil {
			return &runError{err}
		}

		if strictFlag {
			if _, err := r.Next(); err != io.EOF {
				if err == nil {
					return &runError{fmt.Errorf("typedstream: trailing bytes after top-level value")}
				}
				return &runError{err}
			}
		}

		out := prettyprint.String(root)
		if indentFlag >= 0 && indentFlag != 2 {
			// prettyprint indents by two spaces per level; rescale each line.
			lines := strings.Split(out, "\n")
			for i, l := range lines {
				trimmed := strings.TrimLeft(l, " ")
				depth := (len(l) - len(trimmed)) / 2
				lines[i] = strings.Repeat(" ", depth*indentFlag) + trimmed
			}
			out = strings.Join(lines, "\n")
		}
		if colorFlag {
			out = colorize(out)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// colorize highlights double-quoted string literals in out.
// A minimal, dependency-free rendering: no third-party terminal-color
// library is in the retrieved pack, so raw ANSI escapes are used directly.
func colorize(out string) string {
	const (
		reset  = "\x1b[0m"
		yellow = "\x1b[33m"
	)
	var b []byte
	inQuote := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		if c == '"' {
			if !inQuote {
				b = append(b, yellow...)
			}
			b = append(b, c)
			if inQuote {
				b = append(b, reset...)
			}
			inQuote = !inQuote
			continue
		}
		b = append(b, c)
	}
	return string(b)
}
