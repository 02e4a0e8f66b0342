// Package clean applies remediation actions to the cells reported by a scan.
package clean

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/pattern"
	"xlsweep/pkg/xlsweep/scanner"
)

// ErrMissingSheet indicates a finding references a sheet no longer present
// in the live workbook.
var ErrMissingSheet = errors.New("sheet not found in workbook")

// ErrMissingCell indicates a finding's cell is empty or absent at cleaning
// time.
var ErrMissingCell = errors.New("cell is empty or absent")

// ActionKind enumerates the remediation choices for a finding.
type ActionKind int

const (
	// SkipCell leaves the cell untouched and moves to the next finding.
	SkipCell ActionKind = iota
	// DeleteOne removes all occurrences of the finding's pattern from the
	// finding's cell.
	DeleteOne
	// ReplaceOne replaces all occurrences of the finding's pattern in the
	// finding's cell with the action's replacement text.
	ReplaceOne
	// SkipAll terminates processing of all remaining findings.
	SkipAll
	// DeletePatternAll removes the finding's pattern from every string cell
	// in every sheet, then ends the pass.
	DeletePatternAll
	// ReplacePatternAll replaces the finding's pattern in every string cell
	// in every sheet, then ends the pass.
	ReplacePatternAll
	// DeleteAllPatternsAll removes every pattern in the precomputed union
	// from every string cell in every sheet, then ends the pass.
	DeleteAllPatternsAll
	// ReplaceAllPatternsAll replaces every pattern in the precomputed union
	// in every string cell in every sheet, then ends the pass.
	ReplaceAllPatternsAll
)

// Action is one remediation decision. Replacement is only consulted by the
// replace kinds.
type Action struct {
	Kind        ActionKind
	Replacement string
}

// Context describes where the engine is in its pass when asking for a
// decision.
type Context struct {
	// Index is the zero-based position of the finding in the pass.
	Index int
	// Total is the number of findings in the pass.
	Total int
	// UniquePatterns is the size of the de-duplicated decoded pattern
	// union across all findings.
	UniquePatterns int
}

// Decider supplies the action for one finding. Implementations range from
// an interactive prompt to a fixed batch policy; the engine itself performs
// no input or output beyond logging.
type Decider func(f models.Finding, ctx Context) Action

// Result summarizes a cleaning pass.
type Result struct {
	// Records lists every cell actually mutated, in first-mutation order,
	// each holding the cell's original and final values.
	Records []models.ChangeRecord
	// OutputPath is the written artifact, or the source path when nothing
	// changed.
	OutputPath string
	// Saved reports whether a new workbook artifact was written.
	Saved bool
}

// Engine walks scan findings sheet by sheet, asks the decider for an action
// per finding, mutates the live workbook accordingly, and persists to a new
// artifact when at least one cell changed. The workbook handle is owned
// exclusively by the engine for the duration of a pass.
type Engine struct {
	file       *excelize.File
	sourcePath string
	outputPath string
	decide     Decider

	records []models.ChangeRecord
	byCell  map[string]int // cell key -> index into records
}

// New returns an engine over an open workbook. outputPath is where the
// mutated workbook is saved; it must differ from sourcePath, which is never
// rewritten.
func New(f *excelize.File, sourcePath, outputPath string, decide Decider) *Engine {
	return &Engine{
		file:       f,
		sourcePath: sourcePath,
		outputPath: outputPath,
		decide:     decide,
		byCell:     make(map[string]int),
	}
}

// Run processes findings in order, grouped by sheet, and persists the
// workbook if anything was mutated. Workbook-scoped actions and SkipAll end
// the pass early; everything else continues with the next finding.
func (e *Engine) Run(findings []models.Finding) (*Result, error) {
	if len(findings) == 0 {
		return &Result{OutputPath: e.sourcePath}, nil
	}

	union := pattern.Union(findings)
	ctx := Context{Total: len(findings), UniquePatterns: len(union)}

pass:
	for _, f := range bySheet(findings) {
		if !e.sheetExists(f.Sheet) {
			slog.Warn("skipping finding", "ref", f.Ref().String(), "reason", ErrMissingSheet)
			ctx.Index++
			continue
		}

		live, err := e.file.GetCellValue(f.Sheet, f.Ref().Name())
		if err != nil || live == "" {
			slog.Warn("skipping finding", "ref", f.Ref().String(), "reason", ErrMissingCell)
			ctx.Index++
			continue
		}

		action := e.decide(f, ctx)
		ctx.Index++

		switch action.Kind {
		case SkipCell:
			continue

		case SkipAll:
			slog.Info("skipping all remaining findings")
			break pass

		case DeleteOne, ReplaceOne:
			replacement := ""
			if action.Kind == ReplaceOne {
				replacement = action.Replacement
			}
			if err := e.applyToCell(f, live, replacement); err != nil {
				slog.Warn("skipping finding", "ref", f.Ref().String(), "reason", err)
			}
			continue

		case DeletePatternAll, ReplacePatternAll:
			decoded, err := pattern.Decoded(f.Pattern)
			if err != nil {
				slog.Warn("skipping workbook action", "pattern", f.Pattern, "reason", err)
				continue
			}
			replacement := ""
			if action.Kind == ReplacePatternAll {
				replacement = action.Replacement
			}
			e.applyEverywhere([]string{decoded}, replacement)
			break pass

		case DeleteAllPatternsAll, ReplaceAllPatternsAll:
			replacement := ""
			if action.Kind == ReplaceAllPatternsAll {
				replacement = action.Replacement
			}
			e.applyEverywhere(union, replacement)
			break pass

		default:
			slog.Warn("unknown action, skipping cell", "ref", f.Ref().String())
			continue
		}
	}

	return e.persist()
}

// applyToCell rewrites one cell, replacing every occurrence of the
// finding's decoded pattern.
func (e *Engine) applyToCell(f models.Finding, live, replacement string) error {
	decoded, err := pattern.Decoded(f.Pattern)
	if err != nil {
		return err
	}

	cleaned := strings.ReplaceAll(live, decoded, replacement)
	if cleaned == live {
		return nil
	}
	if err := e.file.SetCellStr(f.Sheet, f.Ref().Name(), cleaned); err != nil {
		return err
	}
	e.record(f.Sheet, f.Ref().Name(), live, cleaned)
	return nil
}

// applyEverywhere rewrites every string cell of every sheet, replacing all
// occurrences of each character in chars. Each cell is visited once.
func (e *Engine) applyEverywhere(chars []string, replacement string) {
	for _, sheet := range e.file.GetSheetList() {
		rows, err := e.file.GetRows(sheet)
		if err != nil {
			slog.Warn("cannot read sheet rows", "sheet", sheet, "error", err)
			continue
		}

		modified := 0
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if value == "" || !scanner.IsStringCell(e.file, sheet, colIdx+1, rowIdx+1) {
					continue
				}
				cleaned := value
				for _, c := range chars {
					cleaned = strings.ReplaceAll(cleaned, c, replacement)
				}
				if cleaned == value {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					continue
				}
				if err := e.file.SetCellStr(sheet, cell, cleaned); err != nil {
					slog.Warn("cannot update cell", "sheet", sheet, "cell", cell, "error", err)
					continue
				}
				e.record(sheet, cell, value, cleaned)
				modified++
			}
		}
		if modified > 0 {
			slog.Info("modified cells", "sheet", sheet, "count", modified)
		}
	}
}

// record notes a mutation, collapsing repeated touches of one cell into a
// single record carrying the original and final values.
func (e *Engine) record(sheet, cell, original, cleaned string) {
	key := sheet + "!" + cell
	if i, ok := e.byCell[key]; ok {
		e.records[i].Cleaned = cleaned
		return
	}
	e.byCell[key] = len(e.records)
	e.records = append(e.records, models.ChangeRecord{
		Sheet:    sheet,
		Cell:     cell,
		Original: original,
		Cleaned:  cleaned,
	})
}

// persist saves the workbook to the output path if anything changed. The
// source file is never rewritten; an empty change log writes nothing and
// reports the source path.
func (e *Engine) persist() (*Result, error) {
	if len(e.records) == 0 {
		return &Result{OutputPath: e.sourcePath}, nil
	}
	if e.outputPath == e.sourcePath {
		return nil, fmt.Errorf("refusing to overwrite source workbook %s", e.sourcePath)
	}
	if err := e.file.SaveAs(e.outputPath); err != nil {
		return nil, fmt.Errorf("saving cleaned workbook: %w", err)
	}
	return &Result{Records: e.records, OutputPath: e.outputPath, Saved: true}, nil
}

func (e *Engine) sheetExists(name string) bool {
	for _, s := range e.file.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// bySheet reorders findings so each sheet's findings are processed
// together, preserving the scan order of sheets and of findings within a
// sheet.
func bySheet(findings []models.Finding) []models.Finding {
	var order []string
	grouped := make(map[string][]models.Finding)
	for _, f := range findings {
		if _, ok := grouped[f.Sheet]; !ok {
			order = append(order, f.Sheet)
		}
		grouped[f.Sheet] = append(grouped[f.Sheet], f)
	}

	out := make([]models.Finding, 0, len(findings))
	for _, sheet := range order {
		out = append(out, grouped[sheet]...)
	}
	return out
}
