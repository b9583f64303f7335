// Command typedstream reads and decodes NeXTSTEP/Apple typedstream archives.
package main

import (
	"errors"
	"fmt"
	"os"
)

// runError marks an error produced while running a subcommand (a decode
// failure), as opposed to a cobra argument/flag parse error. Exit code 1 is
// reserved for the former; cobra's own convention (exit code 2) applies to
// the latter.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)

	var re *runError
	if errors.As(err, &re) {
		os.Exit(1)
	}
	os.Exit(2)
}
