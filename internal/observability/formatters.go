// Package observability provides formatted output utilities for CLI reporting.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStats outputs a human-readable summary of the letter store.
func (p *Printer) PrintStats(stats types.LetterStats) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Letters generated:  %d\n", stats.TotalGenerated))
	sb.WriteString(fmt.Sprintf("With feedback:      %d\n", stats.WithFeedback))
	sb.WriteString(fmt.Sprintf("Average rating:     %.2f\n", stats.AverageRating))
	sb.WriteString(fmt.Sprintf("Success rate:       %.0f%%", stats.SuccessRate*100))

	p.printBox("Learning Store Statistics", sb.String())
}
