package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cellworks/battctl/internal/dataset"
)

// Reporter writes a dataset summary to a stream.
type Reporter interface {
	Write(w io.Writer, s *dataset.Summary) error
}

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, s *dataset.Summary) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "BATTERY DATASET SUMMARY\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Generated:"),
		tr.cs(colWhite, s.GeneratedAt.Format("15:04:05")))
	fmt.Fprintf(w, "%s\n", divider)

	fmt.Fprintf(w, "Total batteries: %d\n", s.TotalBatteries)
	fmt.Fprintf(w, "Total cycles:    %d\n", s.TotalCycles)

	fmt.Fprint(w, tr.cs(colBoldWhite, "\nCapacity statistics:\n"))
	fmt.Fprintf(w, "  Mean capacity:    %.2f\n", s.Capacity.Mean)
	fmt.Fprintf(w, "  Min capacity:     %.2f\n", s.Capacity.Min)
	fmt.Fprintf(w, "  Max capacity:     %.2f\n", s.Capacity.Max)
	fmt.Fprintf(w, "  Capacity std dev: %.2f\n", s.Capacity.Std)

	fmt.Fprint(w, tr.cs(colBoldWhite, "\nCapacity statistics by cycle type:\n"))
	for _, ct := range s.CycleTypes() {
		d := s.ByCycleType[ct]
		fmt.Fprintf(w, "  %-16s mean %.2f  min %.2f  max %.2f  std %s\n",
			ct, d.Mean, d.Min, d.Max, formatStd(d.Std))
	}

	if tr.Verbose {
		fmt.Fprint(w, tr.cs(colBoldWhite, "\nPer-battery capacity fade:\n"))
		for _, ds := range s.Datasets {
			fmt.Fprintf(w, "  %-28s %4d cycles  %.2f -> %.2f  (%.1f%% fade)\n",
				ds.Key, ds.Cycles, ds.InitialCapacity, ds.FinalCapacity, ds.FadePercent)
		}
	}

	fmt.Fprintf(w, "%s\n", divider)
	return nil
}

func formatStd(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
