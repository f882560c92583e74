package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

func errorColor() *color.Color   { return color.New(color.FgRed, color.Bold) }
func warningColor() *color.Color { return color.New(color.FgYellow, color.Bold) }
func infoColor() *color.Color    { return color.New(color.FgCyan) }
func caretColor() *color.Color   { return color.New(color.FgGreen, color.Bold) }
func pathColor() *color.Color    { return color.New(color.Bold) }

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}
	for i := 0; i < limit; i++ {
		prettyOne(w, &items[i], fs, opts)
	}
	if hidden := bag.Len() - limit; hidden > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics\n", hidden)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s%s %s: %s\n",
		location(d.Primary, fs, opts),
		paint(opts.Color, severityColor(d.Severity), d.Severity.String()),
		paint(opts.Color, severityColor(d.Severity), d.Code.ID()),
		d.Message)

	if opts.ShowPreview {
		preview(w, d.Primary, fs, opts)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %snote: %s\n", location(note.Span, fs, opts), note.Msg)
			if opts.ShowPreview {
				preview(w, note.Span, fs, opts)
			}
		}
	}
}

// location возвращает "path:line:col: " либо пустую строку для
// синтетических позиций.
func location(span source.Span, fs *source.FileSet, opts PrettyOpts) string {
	if span.Synthetic() || fs == nil {
		return ""
	}
	file := fs.Get(span.File)
	if file == nil {
		return ""
	}
	start, _ := fs.Resolve(span)
	path := file.FormatPath(opts.PathMode.key(), fs.BaseDir())
	loc := fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
	return paint(opts.Color, pathColor(), loc) + ": "
}

// preview печатает строку исходника и подчёркивание ^~~~ под спаном.
// Ширина подчёркивания считается в экранных колонках, поэтому таб и
// широкие руны не ломают выравнивание.
func preview(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	if span.Synthetic() || fs == nil {
		return
	}
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	pad := runewidth.StringWidth(line[:startCol])

	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}
	width := runewidth.StringWidth(line[startCol:max(startCol, endCol)])
	if width < 1 {
		width = 1
	}

	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), paint(opts.Color, caretColor(), underline))
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor()
	case diag.SevWarning:
		return warningColor()
	default:
		return infoColor()
	}
}

// paint красит строку независимо от автодетекта терминала: решение о
// цвете уже принято выше (флаг --color / isatty).
func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}
