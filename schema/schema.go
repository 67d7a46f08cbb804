// Package schema has the canonical scorecard model, input description and shared types.
package schema

import "strings"

// DataField is one declared field of the data dictionary.
type DataField struct {
	Name      string    `json:"name"`
	DataType  DataType  `json:"dataType"`
	OpType    OpType    `json:"optype"`
	UsageType UsageType `json:"usageType,omitempty"` // empty when not declared
	Values    []string  `json:"values,omitempty"`    // only for categorical or ordinal fields
}

// Attribute is one predicate-guarded scoring rule of a characteristic.
type Attribute struct {
	ReasonCode   string    `json:"reasonCode"`
	PartialScore string    `json:"partialScore"`
	Predicate    Predicate `json:"predicate"`
}

// Characteristic is a named scoring dimension with its ordered attributes.
type Characteristic struct {
	Name          string      `json:"name"`
	BaselineScore string      `json:"baselineScore"`
	Attributes    []Attribute `json:"attributes"`
}

// ScoreName is the rendered identity of the characteristic.
func (c Characteristic) ScoreName() string {
	return c.Name + CharacteristicScore
}

// ReasonCodeGroup is the rendered reason code group of the characteristic.
func (c Characteristic) ReasonCodeGroup() string {
	return c.Name + CharacteristicRC
}

// Model is the canonical scorecard built from one description and one grid point.
// Rendering is a pure function of a Model.
type Model struct {
	Name            string           `json:"model_name"`
	BaselineScore   string           `json:"baseline_score"`
	Fields          []DataField      `json:"data_fields"`
	Characteristics []Characteristic `json:"characteristics"`
}

// ParamChoice is the option chosen for one parameter at a grid point.
type ParamChoice struct {
	Param  string `json:"param"`
	Option string `json:"option"`
	Value  string `json:"value"`
}

// GridPoint is one combination of the parameter grid.
// Choices are ordered by parameter name.
type GridPoint struct {
	Choices []ParamChoice `json:"choices"`
}

// Params returns the substitution mapping of the grid point.
func (g GridPoint) Params() map[string]string {
	params := make(map[string]string, len(g.Choices))
	for _, c := range g.Choices {
		params[c.Param] = c.Value
	}
	return params
}

// ModelName derives the model name for this grid point from the base name.
func (g GridPoint) ModelName(base string) string {
	if len(g.Choices) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, c := range g.Choices {
		sb.WriteByte('_')
		sb.WriteString(c.Option)
	}
	return sb.String()
}

// ModelResult is the outcome of compiling one grid point.
// Err is set when this grid point failed; the other fields may then be empty.
type ModelResult struct {
	Name     string
	Point    GridPoint
	Model    *Model
	Document []byte
	Err      error
}

// Failed reports whether this grid point failed to compile.
func (r ModelResult) Failed() bool {
	return r.Err != nil
}
