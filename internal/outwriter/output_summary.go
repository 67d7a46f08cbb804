package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/parquet"
	"github.com/huangsam/scorecard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// summaryHeaders are the table columns of one characteristic.
var summaryHeaders = []string{"#", "Predicate", "Partial Score", "Reason Code"}

// WriteSummary outputs model summaries, dispatching based on the output format configured.
func WriteSummary(summaries []schema.ModelSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summaries)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteSummaryRows(w, parquet.ConvertSummaryRows(flattenRows(summaries)))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(summaries, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryText writes a section per model and a table per characteristic.
func writeSummaryText(summaries []schema.ModelSummary, cfg *contract.Config, duration time.Duration, w io.Writer) error {
	maxWidth := GetMaxPredicateWidth(cfg)
	failed := 0

	for _, s := range summaries {
		title := "Model: " + s.Model
		if s.Params != "" {
			title += " (" + s.Params + ")"
		}
		if s.Status == schema.ModelFailed {
			failed++
			if _, err := fmt.Fprintf(w, "%s\n  %s\n\n", paint(cfg.UseColors, contract.FailureColor, title), s.Error); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, paint(cfg.UseColors, contract.SuccessColor, title)); err != nil {
			return err
		}

		for _, group := range groupRows(s.Rows) {
			header := fmt.Sprintf("%s (baseline %s)", group[0].Characteristic, group[0].BaselineScore)
			if _, err := fmt.Fprintln(w, paint(cfg.UseColors, contract.HeaderColor, header)); err != nil {
				return err
			}
			if err := writeCharacteristicTable(group, maxWidth, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Summarized %d models (%d failed) in %v with %d workers\n",
		len(summaries), failed, duration.Round(time.Millisecond), cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCharacteristicTable renders the attributes of one characteristic.
func writeCharacteristicTable(rows []schema.SummaryRow, maxWidth int, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header(summaryHeaders)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.Predicate, maxWidth),
			r.PartialScore,
			r.ReasonCode,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSummaryCSV writes one line per attribute of every compiled model.
func writeSummaryCSV(w io.Writer, summaries []schema.ModelSummary) error {
	header := []string{"model", "characteristic", "rank", "predicate", "partial_score", "reason_code", "baseline_score"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range flattenRows(summaries) {
			rec := []string{
				r.Model,
				r.Characteristic,
				strconv.Itoa(r.Rank),
				r.Predicate,
				r.PartialScore,
				r.ReasonCode,
				r.BaselineScore,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// flattenRows concatenates the rows of every summary in order.
func flattenRows(summaries []schema.ModelSummary) []schema.SummaryRow {
	var rows []schema.SummaryRow
	for _, s := range summaries {
		rows = append(rows, s.Rows...)
	}
	return rows
}

// groupRows splits rows into consecutive runs of the same characteristic.
func groupRows(rows []schema.SummaryRow) [][]schema.SummaryRow {
	var groups [][]schema.SummaryRow
	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && rows[j].Characteristic == rows[i].Characteristic {
			j++
		}
		groups = append(groups, rows[i:j])
		i = j
	}
	return groups
}
