package tabular

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/crypto/ssh/terminal"
)

// DefaultProgressEvery is how many rows pass between progress reports.
const DefaultProgressEvery = 1000000

// Progress counts written rows and reports them periodically.
type Progress struct {
	// Every is the reporting period in rows; zero or less disables
	// periodic reports.
	Every int

	out   io.Writer
	color bool
	rows  int
}

// NewProgress returns a Progress reporting to out. Reports are colored when
// out is a terminal.
func NewProgress(out io.Writer, every int) *Progress {
	p := &Progress{Every: every, out: out}
	if f, ok := out.(*os.File); ok && terminal.IsTerminal(int(f.Fd())) {
		p.color = true
	}
	return p
}

// Add records one more written row.
func (p *Progress) Add() {
	p.rows++
	if p.Every > 0 && p.rows%p.Every == 0 {
		p.print(color.Cyan, fmt.Sprintf("wrote %d rows", p.rows))
	}
}

// Rows returns the number of rows recorded.
func (p *Progress) Rows() int {
	return p.rows
}

// Done reports completion of the output at path.
func (p *Progress) Done(path string) {
	p.print(color.Green, "done: "+path)
}

func (p *Progress) print(c color.Color, msg string) {
	if p.out == nil {
		return
	}
	if p.color {
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(p.out, msg)
}
