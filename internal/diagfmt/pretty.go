package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"displaystr/internal/diag"
	"displaystr/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() as-is; callers sort the bag first. Each diagnostic prints as
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//	    <source line>
//	    ^~~~~
//
// followed by its notes when ShowNotes is set. The underline is sized in
// display cells so wide runes keep the carets under the defect.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	printHeader(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts)
	printContext(w, d.Primary, fs, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "%s: note: %s\n", location(note.Span, fs, opts), note.Msg)
			printContext(w, note.Span, fs, opts)
		}
	}
}

func printHeader(w io.Writer, sev diag.Severity, code diag.Code, msg string, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	sevText := sev.String()
	codeText := code.ID()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
		codeText = color.New(color.Bold).Sprint(codeText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", location(sp, fs, opts), sevText, codeText, msg)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func location(sp source.Span, fs *source.FileSet, opts PrettyOpts) string {
	if sp.Empty() && sp.Start == 0 {
		return "<input>"
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// printContext shows the defect line (plus opts.Context preceding lines)
// with a caret underline covering the span.
func printContext(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	if sp.Empty() && sp.Start == 0 {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	for i := int8(0); i < opts.Context; i++ {
		back := uint32(opts.Context - i)
		if back >= start.Line {
			continue
		}
		if line := f.GetLine(start.Line - back); line != "" {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	line := f.GetLine(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	// Underline width in display cells. A multi-line span underlines to
	// the end of its first line.
	prefixCols := int(start.Col) - 1
	if prefixCols > len(line) {
		prefixCols = len(line)
	}
	pad := runewidth.StringWidth(line[:prefixCols])

	underEnd := len(line)
	if end.Line == start.Line {
		underEnd = int(end.Col) - 1
		if underEnd > len(line) {
			underEnd = len(line)
		}
	}
	width := runewidth.StringWidth(line[prefixCols:max(prefixCols, underEnd)])
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}
