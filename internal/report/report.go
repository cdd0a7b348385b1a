// Package report renders simulation results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/zappabad/budgetsim/internal/batch"
	"github.com/zappabad/budgetsim/internal/config"
	"github.com/zappabad/budgetsim/internal/simulation"
)

// Unit is the currency label shown next to amounts.
const Unit = "ETH"

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = config.ErrUnknownFormat

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	soldStyle   = numberStyle.Foreground(lipgloss.Color("#10B981"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
)

// FormatAmount renders an amount with the five decimals prices carry.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// Options tunes table output.
type Options struct {
	// Artifacts adds a per-period artifact table after the summary.
	Artifacts bool
}

// Write renders res in the given format.
func Write(w io.Writer, format string, res simulation.Result, opts Options) error {
	switch format {
	case config.FormatTable, "":
		return WriteTable(w, res, opts)
	case config.FormatJSON:
		return WriteJSON(w, res)
	case config.FormatYAML:
		return WriteYAML(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes res as indented JSON.
func WriteJSON(w io.Writer, res simulation.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML writes res as YAML.
func WriteYAML(w io.Writer, res simulation.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// WriteTable writes a human-readable report: stop banner, period table,
// totals, budget sparkline and optionally the artifacts of each period.
func WriteTable(w io.Writer, res simulation.Result, opts Options) error {
	var b strings.Builder

	if res.StoppedEarly() {
		b.WriteString(bannerStyle.Render(fmt.Sprintf(
			"The simulation stopped because the remaining budget fell below the minimum threshold (%s %s).",
			FormatAmount(simulation.MinBudget), Unit)))
		b.WriteString("\n")
	}

	b.WriteString(PeriodTable(res))
	b.WriteString("\n")

	tot := res.Totals()
	fmt.Fprintf(&b, "Periods: %d/%d  Listings: %d  Sold: %d\n",
		tot.Periods, res.Params.MaxPeriods, tot.Listings, tot.Sold)
	fmt.Fprintf(&b, "Creator rewards: %s %s  Spent: %s %s  Final budget: %s %s\n",
		FormatAmount(tot.CreatorRewards), Unit,
		FormatAmount(tot.Spent), Unit,
		FormatAmount(tot.FinalBudget), Unit)
	fmt.Fprintf(&b, "Budget: %s\n", Sparkline(res.BudgetSeries()))

	if opts.Artifacts {
		for _, ps := range res.Periods {
			fmt.Fprintf(&b, "\nPeriod %d artifacts\n", ps.Period)
			b.WriteString(ArtifactTable(ps))
			b.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// PeriodTable renders one row per simulated period.
func PeriodTable(res simulation.Result) string {
	rows := make([][]string, 0, len(res.Periods))
	for _, ps := range res.Periods {
		rows = append(rows, []string{
			strconv.Itoa(ps.Period),
			strconv.Itoa(len(ps.Artifacts)),
			strconv.Itoa(ps.Sold()),
			FormatAmount(ps.CreatorRewards),
			FormatAmount(ps.SpentOnArtifacts),
			FormatAmount(ps.BudgetLeft),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Period", "Listings", "Sold", "Rewards ("+Unit+")", "Spent ("+Unit+")", "Budget Left ("+Unit+")").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return numberStyle
		})
	return t.Render()
}

// ArtifactTable renders the artifacts of a single period.
func ArtifactTable(ps simulation.PeriodSummary) string {
	rows := make([][]string, 0, len(ps.Artifacts))
	for _, a := range ps.Artifacts {
		sold := "no"
		if a.Sold {
			sold = "yes"
		}
		rows = append(rows, []string{a.Name, FormatAmount(a.Price), FormatAmount(a.CreatorRewards), sold})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Price ("+Unit+")", "Reward ("+Unit+")", "Sold").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			case col == 3 && rows[row][3] == "yes":
				return soldStyle
			default:
				return numberStyle
			}
		})
	return t.Render()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a one-line block chart scaled to their range.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := len(sparkBlocks) - 1
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

// WriteBatch renders a batch summary in the given format.
func WriteBatch(w io.Writer, format string, s batch.Summary) error {
	switch format {
	case config.FormatTable, "":
		return WriteBatchTable(w, s)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteBatchTable writes a batch summary as a two-column table.
func WriteBatchTable(w io.Writer, s batch.Summary) error {
	rows := [][]string{
		{"Runs", strconv.Itoa(s.Runs)},
		{"Budget exhausted", fmt.Sprintf("%d (%.1f%%)", s.EarlyStops, s.EarlyStopRate()*100)},
		{"Periods (min / mean / max)", fmt.Sprintf("%d / %.2f / %d", s.MinPeriods, s.MeanPeriods, s.MaxPeriods)},
		{"Final budget (min / mean / max)", fmt.Sprintf("%s / %s / %s %s",
			FormatAmount(s.MinFinalBudget), FormatAmount(s.MeanFinalBudget), FormatAmount(s.MaxFinalBudget), Unit)},
		{"Mean spent", FormatAmount(s.MeanSpent) + " " + Unit},
		{"Mean creator rewards", FormatAmount(s.MeanCreatorRewards) + " " + Unit},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})

	if _, err := io.WriteString(w, t.Render()+"\n"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
