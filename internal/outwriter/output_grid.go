package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"

	"github.com/olekukonko/tablewriter"
)

// GridEntry is the presentation form of one grid point.
type GridEntry struct {
	Index  int               `json:"index"`
	Model  string            `json:"model"`
	Params map[string]string `json:"params,omitempty"` // parameter -> option
	Values map[string]string `json:"values,omitempty"` // parameter -> substituted value
}

// GridEntries converts grid points into presentation entries, in grid order.
func GridEntries(base string, points []schema.GridPoint) []GridEntry {
	entries := make([]GridEntry, len(points))
	for i, p := range points {
		e := GridEntry{Index: i + 1, Model: p.ModelName(base)}
		if len(p.Choices) > 0 {
			e.Params = make(map[string]string, len(p.Choices))
			e.Values = make(map[string]string, len(p.Choices))
			for _, c := range p.Choices {
				e.Params[c.Param] = c.Option
				e.Values[c.Param] = c.Value
			}
		}
		entries[i] = e
	}
	return entries
}

// WriteGrid outputs the grid points, dispatching based on the output format configured.
func WriteGrid(base string, points []schema.GridPoint, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, GridEntries(base, points))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridCSV(w, base, points)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for grid listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridTable(w, base, points)
		}, "Wrote table")
	}
}

// gridHeaders returns the fixed columns followed by one column per parameter.
func gridHeaders(points []schema.GridPoint) []string {
	headers := []string{"#", "Model"}
	if len(points) > 0 {
		for _, c := range points[0].Choices {
			headers = append(headers, c.Param)
		}
	}
	return headers
}

func gridRow(i int, base string, p schema.GridPoint) []string {
	row := []string{strconv.Itoa(i + 1), p.ModelName(base)}
	for _, c := range p.Choices {
		row = append(row, fmt.Sprintf("%s (%s)", c.Option, c.Value))
	}
	return row
}

func writeGridTable(w io.Writer, base string, points []schema.GridPoint) error {
	table := tablewriter.NewWriter(w)
	table.Header(gridHeaders(points))

	data := make([][]string, 0, len(points))
	for i, p := range points {
		data = append(data, gridRow(i, base, p))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d grid %s\n", len(points), plural(len(points), "point", "points"))
	return err
}

func writeGridCSV(w io.Writer, base string, points []schema.GridPoint) error {
	return writeCSVWithHeader(w, gridHeaders(points), func(cw *csv.Writer) error {
		for i, p := range points {
			if err := cw.Write(gridRow(i, base, p)); err != nil {
				return err
			}
		}
		return nil
	})
}
