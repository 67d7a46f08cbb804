package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Description is the raw, unvalidated scorecard description.
// Pointer and nil-able fields distinguish an absent key from a zero value.
type Description struct {
	ModelName       *string             `json:"model_name"`
	BaselineScore   Literal             `json:"baseline_score"`
	DataFields      []RawField          `json:"data_fields"`
	Characteristics []RawCharacteristic `json:"characteristics"`
	ParamGrid       *ParamGrid          `json:"param_grid"`
}

// RawField is a data field declaration as written in the description.
type RawField struct {
	Name      *string   `json:"name"`
	DataType  *string   `json:"dataType"`
	OpType    *string   `json:"optype"`
	UsageType string    `json:"usageType"`
	Values    []Literal `json:"values"`
}

// RawCharacteristic is a characteristic declaration as written in the description.
type RawCharacteristic struct {
	Name          *string        `json:"name"`
	BaselineScore Literal        `json:"baselineScore"`
	Attributes    []RawAttribute `json:"attributes"`
}

// RawAttribute is an attribute declaration as written in the description.
type RawAttribute struct {
	ReasonCode   *string      `json:"reasonCode"`
	PartialScore Literal      `json:"partialScore"`
	Predicate    RawPredicate `json:"predicate"`
}

// Literal is a JSON scalar kept in its source spelling.
// Numbers keep their literal text (2.50 stays "2.50"); strings are unquoted.
type Literal struct {
	Text   string
	Set    bool // key present and not null
	Quoted bool // written as a JSON string
}

// NewLiteral returns a string literal.
func NewLiteral(s string) Literal {
	return Literal{Text: s, Set: true, Quoted: true}
}

// UnmarshalJSON accepts strings, numbers and booleans. Null leaves the literal unset.
func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty literal")
	case bytes.Equal(data, []byte("null")):
		*l = Literal{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Literal{Text: s, Set: true, Quoted: true}
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*l = Literal{Text: string(data), Set: true}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*l = Literal{Text: n.String(), Set: true}
	default:
		return fmt.Errorf("expected a string, number or boolean, got %s", truncateJSON(data))
	}
	return nil
}

// MarshalJSON writes numbers and booleans bare and everything else quoted.
func (l Literal) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("null"), nil
	}
	if l.Quoted {
		return json.Marshal(l.Text)
	}
	return []byte(l.Text), nil
}

// RawPredicate is the declared predicate of an attribute: null, a rule
// expression string, or an ordered list of rule expression strings.
type RawPredicate struct {
	Present bool     // key present in the description
	IsList  bool     // declared as a list
	Rules   []string // empty when the predicate is null
}

// MissingRule returns the null predicate.
func MissingRule() RawPredicate {
	return RawPredicate{Present: true}
}

// SingleRule returns a single rule expression predicate.
func SingleRule(rule string) RawPredicate {
	return RawPredicate{Present: true, Rules: []string{rule}}
}

// RuleList returns a conjunction of rule expressions.
func RuleList(rules ...string) RawPredicate {
	return RawPredicate{Present: true, IsList: true, Rules: rules}
}

// IsMissing reports whether the predicate was declared as null.
func (p RawPredicate) IsMissing() bool {
	return p.Present && !p.IsList && len(p.Rules) == 0
}

// UnmarshalJSON decodes null, a string or a list of strings.
func (p *RawPredicate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	p.Present = true
	switch {
	case bytes.Equal(data, []byte("null")):
		p.IsList, p.Rules = false, nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.IsList, p.Rules = false, []string{s}
		return nil
	case len(data) > 0 && data[0] == '[':
		var elems []*string
		if err := json.Unmarshal(data, &elems); err != nil {
			return fmt.Errorf("predicate list must contain only strings: %w", err)
		}
		rules := make([]string, len(elems))
		for i, e := range elems {
			if e == nil {
				return &MalformedInputError{
					Path:   fmt.Sprintf("predicate[%d]", i),
					Reason: "predicate list element must be a string, got null",
				}
			}
			rules[i] = *e
		}
		p.IsList, p.Rules = true, rules
		return nil
	default:
		return fmt.Errorf("predicate must be null, a string or a list of strings, got %s", truncateJSON(data))
	}
}

// MarshalJSON mirrors UnmarshalJSON.
func (p RawPredicate) MarshalJSON() ([]byte, error) {
	switch {
	case p.IsList:
		return json.Marshal(p.Rules)
	case len(p.Rules) == 1:
		return json.Marshal(p.Rules[0])
	default:
		return []byte("null"), nil
	}
}

// ParamOptions maps option suffixes to substitution values in declaration order.
type ParamOptions = orderedmap.OrderedMap[string, Literal]

// ParamGrid maps parameter names to their options in declaration order.
type ParamGrid struct {
	*orderedmap.OrderedMap[string, *ParamOptions]
}

// NewParamGrid returns an empty grid.
func NewParamGrid() *ParamGrid {
	return &ParamGrid{OrderedMap: orderedmap.New[string, *ParamOptions]()}
}

// Add declares an option for a parameter, creating the parameter when needed.
func (g *ParamGrid) Add(param, option string, value Literal) *ParamGrid {
	opts, ok := g.Get(param)
	if !ok || opts == nil {
		opts = orderedmap.New[string, Literal]()
		g.Set(param, opts)
	}
	opts.Set(option, value)
	return g
}

// Declare adds a parameter with no options.
func (g *ParamGrid) Declare(param string) *ParamGrid {
	if _, ok := g.Get(param); !ok {
		g.Set(param, orderedmap.New[string, Literal]())
	}
	return g
}

// UnmarshalJSON decodes the grid keeping option declaration order.
func (g *ParamGrid) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, *ParamOptions]()
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}
	g.OrderedMap = om
	return nil
}

// MarshalJSON encodes the grid keeping option declaration order.
func (g ParamGrid) MarshalJSON() ([]byte, error) {
	if g.OrderedMap == nil {
		return []byte("{}"), nil
	}
	return g.OrderedMap.MarshalJSON()
}

// IsEmpty reports whether the grid declares no parameters.
func (g *ParamGrid) IsEmpty() bool {
	return g == nil || g.OrderedMap == nil || g.Len() == 0
}

// truncateJSON shortens a raw JSON value for error messages.
func truncateJSON(data []byte) string {
	const limit = 32
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
