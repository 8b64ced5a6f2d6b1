package driver

import (
	"fmt"

	"basv2/internal/diag"
	"basv2/internal/program"
	"basv2/internal/source"
)

// TokenizeResult holds the tokenized lines of one listing.
type TokenizeResult struct {
	File    *source.File
	Program *program.Program
	Bag     *diag.Bag // line-number diagnostics from loading
}

// Tokenize loads path and splits it into numbered, tokenized lines.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fileSet.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	prog := program.Load(file.Text(), &diag.BagReporter{Bag: bag})
	return &TokenizeResult{File: file, Program: prog, Bag: bag}, nil
}
