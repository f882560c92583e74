package driver

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/ir"
	"ember/internal/irtext"
	"ember/internal/source"
)

// ParseResult — итог разбора без свёртки.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ir.Module
	Bag     *diag.Bag
	OK      bool
}

// ParseFile загружает и разбирает один .eir файл.
func ParseFile(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseInto(fs, fileID, maxDiagnostics), nil
}

// ParseText разбирает содержимое из памяти (stdin, тесты).
func ParseText(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseInto(fs, fileID, maxDiagnostics)
}

func parseInto(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	m, ok := irtext.ParseModule(fileID, file.Content, diag.BagReporter{Bag: bag})
	bag.Sort()
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Module:  m,
		Bag:     bag,
		OK:      ok,
	}
}
