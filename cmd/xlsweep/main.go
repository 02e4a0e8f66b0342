// Package main provides the CLI entry point for xlsweep.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"xlsweep/pkg/xlsweep"
	"xlsweep/pkg/xlsweep/clean"
	"xlsweep/pkg/xlsweep/config"
	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/pattern"
	"xlsweep/pkg/xlsweep/report"
)

var (
	configPath  string
	outputDir   string
	applyPolicy string
	replacement string
	noColor     bool
	logLevel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsweep [input.xlsx] [pattern]",
		Short: "Scan spreadsheets for problematic characters and clean them",
		Long: `xlsweep scans every sheet of a workbook for problematic characters
(by default the high-byte range 0x80-0xFF and their escape-token forms),
reports each occurrence with its exact cell and offset, and can delete or
replace them interactively or in bulk, writing the result to a new file.`,
		Args:          cobra.MaximumNArgs(2),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML config file (default: xlsweep.toml if present)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for output artifacts (default: next to the input)")
	rootCmd.Flags().StringVar(&applyPolicy, "apply", "", "Non-interactive cleaning policy: delete-all or replace-all")
	rootCmd.Flags().StringVar(&replacement, "replacement", "", "Replacement text for --apply replace-all")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging(logLevel)
	if noColor {
		color.NoColor = true
	}

	stdin := bufio.NewReader(os.Stdin)

	inputPath, err := resolveInput(stdin, args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	patterns, err := resolvePatterns(stdin, args, opts)
	if err != nil {
		return err
	}

	findings, err := xlsweep.Scan(inputPath, patterns, opts)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		fmt.Printf("No problematic characters found in '%s'.\n", inputPath)
		return nil
	}

	printFindings(findings, opts.Window())

	now := time.Now()
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	writeScanArtifacts(inputPath, findings, opts, now)

	decide, interactive, err := chooseDecider(stdin, opts.Window())
	if err != nil {
		return err
	}
	if interactive && !confirmCleaning(stdin) {
		fmt.Println("No cleaning performed. You can manually edit the file using the scan results.")
		return nil
	}

	return runCleaning(inputPath, findings, opts, decide, now)
}

// resolveInput returns the workbook path from the arguments, prompting for
// one when absent.
func resolveInput(stdin *bufio.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	fmt.Println("No file specified via command line.")
	fmt.Print("Enter path to the workbook: ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input path: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", errors.New("no file selected")
	}
	return path, nil
}

// resolvePatterns returns the pattern set for the scan: a single decoded
// target when one was supplied, otherwise the full default set. With no
// arguments at all, the operator is offered a single-target prompt.
func resolvePatterns(stdin *bufio.Reader, args []string, opts xlsweep.Options) ([]string, error) {
	target := ""
	switch {
	case len(args) > 1:
		target = args[1]
	case len(args) == 0:
		fmt.Println("\nDo you want to scan for a specific character? (Leave blank to scan for all)")
		fmt.Print(`Enter character or escape sequence (e.g., \x81): `)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading target pattern: %w", err)
		}
		target = strings.TrimSpace(line)
	}

	if target == "" {
		return xlsweep.Patterns(nil, opts), nil
	}
	decoded, err := pattern.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	return []string{decoded}, nil
}

// loadOptions builds the effective options from defaults, the config file
// and the command-line flags, in that order of precedence.
func loadOptions() (xlsweep.Options, error) {
	opts := xlsweep.DefaultOptions()

	path := configPath
	var cfg *config.File
	var err error
	if path == "" {
		cfg, err = config.LoadIfPresent("xlsweep.toml")
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts)

	if outputDir != "" {
		opts.OutputDir = outputDir
	}
	return opts, nil
}

func printFindings(findings []models.Finding, window int) {
	heading := color.New(color.FgYellow, color.Bold)
	heading.Printf("\nFound %d instances of problematic characters:\n", len(findings))
	fmt.Println(strings.Repeat("-", 80))
	for _, f := range findings {
		report.WriteFinding(os.Stdout, f, window)
	}
}

// writeScanArtifacts writes the CSV records file and the findings report.
// Neither failure discards the scan: the CSV is authoritative, and a
// report encoding failure prints the likely offending cells instead.
func writeScanArtifacts(inputPath string, findings []models.Finding, opts xlsweep.Options, now time.Time) {
	csvPath := report.TimestampedPath(inputPath, opts.OutputDir, "char_scan_results", ".csv", opts.Layout(), now)
	if err := report.WriteRecordsCSV(csvPath, findings); err != nil {
		color.Yellow("Could not write scan results CSV: %v", err)
	} else {
		fmt.Printf("Results saved to %s\n", csvPath)
	}

	reportPath := report.TimestampedPath(inputPath, opts.OutputDir, "findings_report", ".txt", opts.Layout(), now)
	err := report.WriteFindingsText(reportPath, inputPath, findings, opts.Window(), now)
	var encErr *report.EncodingError
	switch {
	case errors.As(err, &encErr):
		color.Yellow("The findings report could not be written with the output encoding.")
		fmt.Println("The problematic character was likely from one of these cells:")
		for _, hint := range report.LikelyOffenders(findings, 5) {
			fmt.Println("  " + hint)
		}
		fmt.Println("Tip: the scan succeeded; consult the CSV results file instead.")
	case err != nil:
		color.Yellow("Could not write findings report: %v", err)
	default:
		fmt.Printf("Detailed findings report saved to: %s\n", reportPath)
	}
}

// chooseDecider returns the decision function for the cleaning pass: a
// fixed policy when --apply is set, the interactive prompt otherwise.
func chooseDecider(stdin *bufio.Reader, window int) (clean.Decider, bool, error) {
	switch applyPolicy {
	case "":
		return promptDecider(stdin, os.Stdout, window), true, nil
	case "delete-all":
		return policyDecider(clean.Action{Kind: clean.DeleteAllPatternsAll}), false, nil
	case "replace-all":
		return policyDecider(clean.Action{Kind: clean.ReplaceAllPatternsAll, Replacement: replacement}), false, nil
	default:
		return nil, false, fmt.Errorf("invalid --apply policy: %s (must be delete-all or replace-all)", applyPolicy)
	}
}

func confirmCleaning(stdin *bufio.Reader) bool {
	fmt.Println("\nWould you like to clean the problematic characters?")
	fmt.Println("This will create a new copy of the workbook with the problematic characters handled.")
	fmt.Print("Clean the file? (y/n): ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func runCleaning(inputPath string, findings []models.Finding, opts xlsweep.Options, decide clean.Decider, now time.Time) error {
	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", xlsweep.ErrOpenFailure, err)
	}
	defer f.Close()

	cleanedPath := report.TimestampedPath(inputPath, opts.OutputDir, "cleaned", ".xlsx", opts.Layout(), now)
	engine := clean.New(f, inputPath, cleanedPath, decide)
	result, err := engine.Run(findings)
	if err != nil {
		return err
	}

	if !result.Saved {
		fmt.Println("No changes were made.")
		return nil
	}

	success := color.New(color.FgGreen)
	success.Printf("\nCleaned %d cells.\n", len(result.Records))
	fmt.Printf("Saved cleaned file as: %s\n", result.OutputPath)

	logPath := report.TimestampedPath(inputPath, opts.OutputDir, "cleaning_log", ".txt", opts.Layout(), now)
	err = report.WriteCleanLog(logPath, inputPath, result.Records, now)
	var encErr *report.EncodingError
	switch {
	case errors.As(err, &encErr):
		color.Yellow("The cleaning log could not be written with the output encoding.")
		fmt.Println("The problematic character was found in one of the following cells:")
		for _, hint := range report.LikelyChangedCells(result.Records, 5) {
			fmt.Println("  " + hint)
		}
		fmt.Println("Tip: the cleaning itself succeeded; the cleaned workbook is intact.")
	case err != nil:
		color.Yellow("Could not write cleaning log: %v", err)
	default:
		fmt.Printf("Cleaning log saved as: %s\n", logPath)
	}

	fmt.Printf("\nCleaning complete! You can now use the cleaned file: %s\n", result.OutputPath)
	return nil
}

func setupLogging(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
