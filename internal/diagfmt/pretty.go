package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"calvin/internal/diag"
	"calvin/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := printer{w: w, fs: fs, opts: opts}
	p.setupColors()
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts

	errC, warnC, infoC, pathC, caretC, noteC *color.Color
}

func (p *printer) setupColors() {
	p.errC = color.New(color.FgRed, color.Bold)
	p.warnC = color.New(color.FgYellow, color.Bold)
	p.infoC = color.New(color.FgCyan)
	p.pathC = color.New(color.Bold)
	p.caretC = color.New(color.FgGreen, color.Bold)
	p.noteC = color.New(color.FgBlue)
	for _, c := range []*color.Color{p.errC, p.warnC, p.infoC, p.pathC, p.caretC, p.noteC} {
		if p.opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *printer) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errC
	case diag.SevWarning:
		return p.warnC
	}
	return p.infoC
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	head := p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	f, ok := located(p.fs, d.Primary)
	if !ok {
		fmt.Fprintf(p.w, "%s: %s\n", head, d.Message)
		return
	}
	start, _ := p.fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(f, p.opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(p.w, "%s: %s: %s\n", p.pathC.Sprint(loc), head, d.Message)
	p.excerpt(f, d.Primary)

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(p.w, "  %s %s\n", p.noteC.Sprint("note:"), n.Msg)
		if nf, ok := located(p.fs, n.Span); ok && !n.Span.Empty() {
			p.excerpt(nf, n.Span)
		}
	}
}

// excerpt prints the first line of sp with the covered columns underlined.
func (p *printer) excerpt(f *source.File, sp source.Span) {
	start, end := p.fs.Resolve(sp)
	line := f.Line(start.Line)
	if line == "" {
		return
	}
	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(p.w, "%s%s\n", gutter, strings.ReplaceAll(line, "\t", " "))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line != start.Line {
		width = max(1, len(line)-int(start.Col)+1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	pad := strings.Repeat(" ", len(gutter)+int(start.Col)-1)
	fmt.Fprintf(p.w, "%s%s\n", pad, p.caretC.Sprint(marker))
}
