package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PredicateKind discriminates the variants of Predicate.
type PredicateKind int

// All predicate variants.
const (
	MissingPredicate     PredicateKind = iota // field is missing
	ComparisonPredicate                       // single comparison
	ConjunctionPredicate                      // AND of comparisons
)

// String returns the lowercase name of the variant.
func (k PredicateKind) String() string {
	switch k {
	case MissingPredicate:
		return "missing"
	case ComparisonPredicate:
		return "comparison"
	case ConjunctionPredicate:
		return "conjunction"
	default:
		return fmt.Sprintf("PredicateKind(%d)", int(k))
	}
}

// Comparison is a single field comparison.
type Comparison struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// String renders the comparison in rule-expression form, e.g. "wage <= 1000".
func (c Comparison) String() string {
	sym, ok := OperatorSymbols[c.Operator]
	if !ok {
		sym = string(c.Operator)
	}
	return c.Field + " " + sym + " " + c.Value
}

// Predicate is the compiled form of an attribute rule.
// Terms holds exactly one comparison for ComparisonPredicate, at least one
// for ConjunctionPredicate and none for MissingPredicate.
type Predicate struct {
	Kind  PredicateKind `json:"-"`
	Field string        `json:"field"`
	Terms []Comparison  `json:"terms,omitempty"`
}

// NewMissing returns a predicate that holds when field is missing.
func NewMissing(field string) Predicate {
	return Predicate{Kind: MissingPredicate, Field: field}
}

// NewComparison returns a single comparison predicate.
func NewComparison(field string, op Operator, value string) Predicate {
	return Predicate{
		Kind:  ComparisonPredicate,
		Field: field,
		Terms: []Comparison{{Field: field, Operator: op, Value: value}},
	}
}

// NewConjunction returns a predicate that holds when all terms hold.
func NewConjunction(field string, terms []Comparison) Predicate {
	return Predicate{Kind: ConjunctionPredicate, Field: field, Terms: terms}
}

// String renders the predicate for humans: "wage missing", "wage <= 1000"
// or "wage > 1000 && wage <= 2500".
func (p Predicate) String() string {
	switch p.Kind {
	case MissingPredicate:
		return p.Field + " missing"
	case ComparisonPredicate, ConjunctionPredicate:
		parts := make([]string, len(p.Terms))
		for i, t := range p.Terms {
			parts[i] = t.String()
		}
		return strings.Join(parts, " && ")
	default:
		return p.Field + " ?"
	}
}

// MarshalJSON includes the variant name so JSON consumers can tell the variants apart.
func (p Predicate) MarshalJSON() ([]byte, error) {
	type alias Predicate
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
		alias
	}{
		Kind:  p.Kind.String(),
		Text:  p.String(),
		alias: alias(p),
	})
}
