// Package pmml holds the PMML 4.2 scorecard document tree and its serializer.
// The tree is plain data; all ordering is the order of the slices it holds.
package pmml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Document is the PMML root element.
type Document struct {
	XMLName        xml.Name       `xml:"PMML"`
	Version        string         `xml:"version,attr"`
	Xmlns          string         `xml:"xmlns,attr"`
	Header         Header         `xml:"Header"`
	DataDictionary DataDictionary `xml:"DataDictionary"`
	Scorecard      Scorecard      `xml:"Scorecard"`
}

// Header carries no metadata.
type Header struct{}

// DataDictionary declares every field of the model.
type DataDictionary struct {
	NumberOfFields int         `xml:"numberOfFields,attr"`
	Fields         []DataField `xml:"DataField"`
}

// DataField is one declared field with its optional value enumeration.
type DataField struct {
	Name     string  `xml:"name,attr"`
	DataType string  `xml:"dataType,attr"`
	OpType   string  `xml:"optype,attr"`
	Values   []Value `xml:"Value"`
}

// Value is one allowed literal of a categorical or ordinal field.
type Value struct {
	Value string `xml:"value,attr"`
}

// Scorecard is the model element with the fixed scoring algorithm attributes.
type Scorecard struct {
	ModelName           string          `xml:"modelName,attr"`
	FunctionName        string          `xml:"functionName,attr"`
	UseReasonCodes      string          `xml:"useReasonCodes,attr"`
	ReasonCodeAlgorithm string          `xml:"reasonCodeAlgorithm,attr"`
	InitialScore        string          `xml:"initialScore,attr"`
	BaselineScore       string          `xml:"baselineScore,attr"`
	BaselineMethod      string          `xml:"baselineMethod,attr"`
	MiningSchema        MiningSchema    `xml:"MiningSchema"`
	Output              Output          `xml:"Output"`
	Characteristics     Characteristics `xml:"Characteristics"`
}

// MiningSchema references every field used by the model.
type MiningSchema struct {
	Fields []MiningField `xml:"MiningField"`
}

// MiningField is one field reference with its optional usage type.
type MiningField struct {
	Name      string `xml:"name,attr"`
	UsageType string `xml:"usageType,attr,omitempty"`
}

// Output declares the values returned by a scoring engine.
type Output struct {
	Fields []OutputField `xml:"OutputField"`
}

// OutputField is one returned value.
type OutputField struct {
	Name     string `xml:"name,attr"`
	Rank     string `xml:"rank,attr,omitempty"`
	Feature  string `xml:"feature,attr"`
	DataType string `xml:"dataType,attr"`
	OpType   string `xml:"optype,attr"`
}

// Characteristics holds the scored characteristics in declaration order.
type Characteristics struct {
	Items []Characteristic `xml:"Characteristic"`
}

// Characteristic is one scoring dimension.
type Characteristic struct {
	Name          string      `xml:"name,attr"`
	ReasonCode    string      `xml:"reasonCode,attr"`
	BaselineScore string      `xml:"baselineScore,attr"`
	Attributes    []Attribute `xml:"Attribute"`
}

// Attribute is one scoring rule. Exactly one of the predicate fields is set.
type Attribute struct {
	ReasonCode        string             `xml:"reasonCode,attr"`
	PartialScore      string             `xml:"partialScore,attr"`
	SimplePredicate   *SimplePredicate   `xml:"SimplePredicate"`
	CompoundPredicate *CompoundPredicate `xml:"CompoundPredicate"`
}

// SimplePredicate compares one field against a value, or tests it for missing.
type SimplePredicate struct {
	Field    string `xml:"field,attr"`
	Operator string `xml:"operator,attr"`
	Value    string `xml:"value,attr,omitempty"`
}

// CompoundPredicate combines simple predicates with a boolean operator.
type CompoundPredicate struct {
	BooleanOperator string            `xml:"booleanOperator,attr"`
	Predicates      []SimplePredicate `xml:"SimplePredicate"`
}

// Encode serializes the document in one pass: XML declaration, two-space
// indentation and a trailing newline. Equal documents encode to equal bytes.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode PMML document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush PMML document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode parses a serialized document back into the tree.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode PMML document: %w", err)
	}
	return &doc, nil
}
