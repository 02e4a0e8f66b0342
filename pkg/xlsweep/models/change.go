package models

// ChangeRecord captures one cell mutation made by the cleaning engine.
// Records are append-only and only produced when the new value actually
// differs from the original; repeated mutations of the same cell within a
// pass collapse to a single record holding the final state.
type ChangeRecord struct {
	// Sheet is the sheet the mutated cell lives on.
	Sheet string `json:"sheet"`
	// Cell is the in-sheet cell name, e.g. "B12".
	Cell string `json:"cell"`
	// Original is the cell text before the first mutation.
	Original string `json:"original"`
	// Cleaned is the cell text after the last mutation.
	Cleaned string `json:"cleaned"`
}
