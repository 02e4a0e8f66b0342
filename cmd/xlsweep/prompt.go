package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"xlsweep/pkg/xlsweep/clean"
	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/report"
)

// promptDecider returns the interactive decision function: for each finding
// it shows the live cell, the character classification and the numbered
// action menu, then reads a choice from in.
func promptDecider(in *bufio.Reader, out io.Writer, window int) clean.Decider {
	return func(f models.Finding, ctx clean.Context) clean.Action {
		heading := color.New(color.FgCyan)
		heading.Fprintf(out, "\nCleaning cell %s (%d of %d)\n", f.Ref().String(), ctx.Index+1, ctx.Total)
		fmt.Fprintf(out, "Current value: %s\n", f.CellValue)
		for _, pos := range f.Positions {
			context, caret := report.Snippet(f.CellValue, pos, window)
			fmt.Fprintf(out, "Context: ...%s...\n", context)
			fmt.Fprintf(out, "            %s\n", caret)
		}
		fmt.Fprintf(out, "Problematic character: %s\n", f.HexValue)
		if f.IsPrintable {
			fmt.Fprintf(out, "Character: '%s' - %s\n", f.Pattern, f.Description)
		} else {
			fmt.Fprintf(out, "Character: Non-printable - %s\n", f.Description)
		}

		fmt.Fprintln(out, "\nOptions:")
		fmt.Fprintln(out, "1. Delete the character")
		fmt.Fprintln(out, "2. Replace with custom text")
		fmt.Fprintln(out, "3. Skip this cell")
		fmt.Fprintln(out, "4. Skip all remaining cells")
		fmt.Fprintln(out, "5. Delete ALL instances of this character in ALL cells")
		fmt.Fprintln(out, "6. Replace ALL instances of this character in ALL cells")
		fmt.Fprintln(out, "7. Delete ALL problematic characters (all types) in ALL cells")
		fmt.Fprintln(out, "8. Replace ALL problematic characters (all types) in ALL cells")
		fmt.Fprint(out, "Choose an option (1-8): ")

		choice := readLine(in)
		switch choice {
		case "1":
			return clean.Action{Kind: clean.DeleteOne}
		case "2":
			return clean.Action{Kind: clean.ReplaceOne, Replacement: promptReplacement(in, out)}
		case "3":
			fmt.Fprintf(out, "Skipping cell %s.\n", f.Ref().Name())
			return clean.Action{Kind: clean.SkipCell}
		case "4":
			fmt.Fprintln(out, "Skipping all remaining cells.")
			return clean.Action{Kind: clean.SkipAll}
		case "5":
			fmt.Fprintf(out, "Deleting all instances of %s in all cells...\n", f.HexValue)
			return clean.Action{Kind: clean.DeletePatternAll}
		case "6":
			r := promptReplacement(in, out)
			fmt.Fprintf(out, "Replacing all instances of %s with '%s' in all cells...\n", f.HexValue, r)
			return clean.Action{Kind: clean.ReplacePatternAll, Replacement: r}
		case "7":
			fmt.Fprintf(out, "Deleting ALL problematic characters (%d unique) in ALL cells...\n", ctx.UniquePatterns)
			return clean.Action{Kind: clean.DeleteAllPatternsAll}
		case "8":
			r := promptReplacement(in, out)
			fmt.Fprintf(out, "Replacing ALL problematic characters (%d unique) with '%s' in ALL cells...\n", ctx.UniquePatterns, r)
			return clean.Action{Kind: clean.ReplaceAllPatternsAll, Replacement: r}
		default:
			fmt.Fprintln(out, "Invalid choice. Skipping this cell.")
			return clean.Action{Kind: clean.SkipCell}
		}
	}
}

// policyDecider returns a decider that applies the same action to the first
// finding it is asked about. Only workbook-scoped actions make sense here:
// they end the pass after one decision.
func policyDecider(action clean.Action) clean.Decider {
	return func(models.Finding, clean.Context) clean.Action {
		return action
	}
}

func promptReplacement(in *bufio.Reader, out io.Writer) string {
	fmt.Fprint(out, "Enter replacement text: ")
	return readLine(in)
}

func readLine(in *bufio.Reader) string {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
