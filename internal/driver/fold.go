// Package driver связывает фазы пайплайна в один прогон: загрузка файла,
// разбор текстового IR, валидация, свёртка констант и печать результата.
// Повторные прогоны по неизменённому входу обслуживаются дисковым кэшем.
package driver

import (
	"context"
	"fmt"
	"strings"

	"ember/internal/constfold"
	"ember/internal/diag"
	"ember/internal/ir"
	"ember/internal/irtext"
	"ember/internal/observ"
	"ember/internal/source"
)

// Options настраивают один прогон.
type Options struct {
	// Jobs — число функций, сворачиваемых параллельно; <=0 значит
	// GOMAXPROCS, 1 отключает параллелизм.
	Jobs           int
	MaxDiagnostics int
	Timings        bool
	// Cache включает дисковый кэш; nil — каждый раз считать заново.
	Cache *DiskCache
	// Types улучшает формулировки диагностик. Может быть nil.
	Types constfold.TypeLookup
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// Result — итог одного прогона.
type Result struct {
	FileSet  *source.FileSet
	File     *source.File
	Module   *ir.Module // nil при попадании в кэш
	Bag      *diag.Bag
	Folded   int
	Dump     string
	CacheHit bool
	Timer    *observ.Timer
}

// FoldFile загружает файл и прогоняет пайплайн.
func FoldFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fold(ctx, fs, fileID, opts)
}

// FoldText прогоняет пайплайн по содержимому из памяти (stdin, тесты).
func FoldText(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return fold(ctx, fs, fileID, opts)
}

func fold(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*Result, error) {
	file := fs.Get(fileID)
	res := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
		Timer:   observ.NewTimer(),
	}

	key := CacheKey(file.Hash)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			return nil, fmt.Errorf("cache read: %w", err)
		}
		if hit {
			res.CacheHit = true
			res.Folded = payload.Folded
			res.Dump = payload.Dump
			restoreDiags(res.Bag, fileID, payload.Diags)
			finish(res, opts)
			return res, nil
		}
	}

	endParse := res.Timer.Begin("parse")
	m, ok := irtext.ParseModule(fileID, file.Content, diag.BagReporter{Bag: res.Bag})
	endParse(fmt.Sprintf("%d funcs", len(m.Funcs)))
	res.Module = m
	if !ok {
		finish(res, opts)
		return res, nil
	}

	endValidate := res.Timer.Begin("validate")
	err := ir.Validate(m)
	endValidate("")
	if err != nil {
		return nil, fmt.Errorf("invalid IR in %s: %w", file.Path, err)
	}

	endFold := res.Timer.Begin("fold")
	foldOpts := constfold.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		Types:    opts.Types,
	}
	if opts.Jobs == 1 || len(m.Funcs) < 2 {
		res.Folded = constfold.Run(m, foldOpts)
	} else {
		res.Folded, err = constfold.RunParallel(ctx, m, opts.Jobs, foldOpts)
		if err != nil {
			return nil, err
		}
	}
	endFold(fmt.Sprintf("%d folded", res.Folded))

	var sb strings.Builder
	if err := ir.DumpModule(&sb, m, ir.DumpOptions{}); err != nil {
		return nil, err
	}
	res.Dump = sb.String()

	if opts.Cache != nil {
		payload := &DiskPayload{
			Schema: diskCacheSchemaVersion,
			Path:   file.Path,
			Folded: res.Folded,
			Dump:   res.Dump,
			Diags:  cacheDiags(res.Bag, fileID),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			return nil, fmt.Errorf("cache write: %w", err)
		}
	}

	finish(res, opts)
	return res, nil
}

func finish(res *Result, opts Options) {
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:   "fold",
			Path:   res.File.Path,
			Report: res.Timer.Report(),
		})
	}
	res.Bag.Sort()
	res.Bag.Dedup()
}

func cacheDiags(bag *diag.Bag, file source.FileID) []CachedDiag {
	items := bag.Items()
	out := make([]CachedDiag, 0, len(items))
	for _, d := range items {
		// Диагностики чужих файлов в кэш не попадают: ключ считается по
		// одному файлу.
		if d.Primary.File != file && !d.Primary.Synthetic() {
			continue
		}
		out = append(out, CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Primary:  !d.Primary.Synthetic(),
		})
	}
	return out
}

func restoreDiags(bag *diag.Bag, file source.FileID, cached []CachedDiag) {
	for _, c := range cached {
		span := source.Span{}
		if c.Primary {
			span = source.Span{File: file, Start: c.Start, End: c.End}
		}
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(c.Severity),
			Code:     diag.Code(c.Code),
			Message:  c.Message,
			Primary:  span,
		})
	}
}
