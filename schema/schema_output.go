package schema

import "strings"

// SummaryRow is one attribute of one compiled model, flattened for tabular output.
type SummaryRow struct {
	Model          string `json:"model"`
	Characteristic string `json:"characteristic"`
	Rank           int    `json:"rank"` // 1-based position within the characteristic
	Predicate      string `json:"predicate"`
	PartialScore   string `json:"partial_score"`
	ReasonCode     string `json:"reason_code"`
	BaselineScore  string `json:"baseline_score"`
}

// ModelSummary groups the rows of one model for presentation.
type ModelSummary struct {
	Model  string       `json:"model"`
	Params string       `json:"params,omitempty"`
	Status ModelStatus  `json:"status"`
	Error  string       `json:"error,omitempty"`
	Rows   []SummaryRow `json:"rows,omitempty"`
}

// FormatParams renders the choices of a grid point as "a=x, b=y".
func FormatParams(point GridPoint) string {
	parts := make([]string, len(point.Choices))
	for i, c := range point.Choices {
		parts[i] = c.Param + "=" + c.Option
	}
	return strings.Join(parts, ", ")
}

// SummarizeModel flattens a compiled model into summary rows.
func SummarizeModel(m *Model) []SummaryRow {
	if m == nil {
		return nil
	}
	var rows []SummaryRow
	for _, c := range m.Characteristics {
		for i, a := range c.Attributes {
			rows = append(rows, SummaryRow{
				Model:          m.Name,
				Characteristic: c.Name,
				Rank:           i + 1,
				Predicate:      a.Predicate.String(),
				PartialScore:   a.PartialScore,
				ReasonCode:     a.ReasonCode,
				BaselineScore:  c.BaselineScore,
			})
		}
	}
	return rows
}

// SummarizeResults builds one summary per grid point, in grid order.
func SummarizeResults(results []ModelResult) []ModelSummary {
	output := make([]ModelSummary, len(results))
	for i, r := range results {
		s := ModelSummary{
			Model:  r.Name,
			Params: FormatParams(r.Point),
			Status: ModelOK,
		}
		if r.Failed() {
			s.Status = ModelFailed
			s.Error = r.Err.Error()
		} else {
			s.Rows = SummarizeModel(r.Model)
		}
		output[i] = s
	}
	return output
}
