package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusKind pairs a report label with its terminal color.
type statusKind struct {
	label string
	color string
}

var (
	statusOK    = statusKind{label: "OK", color: ansiGreen}
	statusWarn  = statusKind{label: "WARN", color: ansiYellow}
	statusError = statusKind{label: "ERROR", color: ansiRed}
)

// statusPrinter writes aligned "name: [KIND] message" report lines, colored
// only when the destination is a terminal.
type statusPrinter struct {
	w     io.Writer
	color bool
	width int
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	return &statusPrinter{w: w, color: shouldColorize(w), width: 20}
}

func (p *statusPrinter) section(title string) {
	fmt.Fprintln(p.w, p.paint(ansiBlue, "== "+strings.TrimSpace(title)+" =="))
}

func (p *statusPrinter) line(name string, kind statusKind, message string) {
	fmt.Fprintln(p.w, p.format(name, kind, message))
}

func (p *statusPrinter) format(name string, kind statusKind, message string) string {
	text := "[" + kind.label + "]"
	if message != "" {
		text += " " + message
	}
	return p.paint(kind.color, fmt.Sprintf("  %-*s %s", p.width, name+":", text))
}

func (p *statusPrinter) paint(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + ansiReset
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
