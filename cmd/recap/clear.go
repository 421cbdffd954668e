package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/agusx1211/recap/internal/output"
)

// clearOutputs lists the recap output files in dir, asks for confirmation
// on in unless yes is set, and deletes them.
func clearOutputs(dir string, yes bool, in io.Reader, out io.Writer) error {
	paths, err := output.ListReports(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(out, "No %s* files found in %s\n", output.FilePrefix, dir)
		return nil
	}

	fmt.Fprintf(out, "Found %d recap output file(s):\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	if !yes {
		color.New(color.FgYellow).Fprint(out, "Delete these files? [y/N]: ")
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	removed, err := output.RemoveAll(paths)
	color.New(color.FgGreen).Fprintf(out, "Removed %d file(s)\n", len(removed))
	if err != nil {
		return fmt.Errorf("some files could not be removed: %w", err)
	}
	return nil
}
