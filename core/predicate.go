package core

import (
	"strings"
	"sync"

	"github.com/huangsam/scorecard/schema"
)

// CompilePredicate compiles a declared predicate for field.
// A null predicate means the field is missing, a single rule is one comparison
// and a list of rules is the conjunction of its comparisons in list order.
func CompilePredicate(field string, raw schema.RawPredicate) (schema.Predicate, error) {
	if !raw.IsList {
		if len(raw.Rules) == 0 {
			return schema.NewMissing(field), nil
		}
		c, err := CompileRule(field, raw.Rules[0])
		if err != nil {
			return schema.Predicate{}, err
		}
		return schema.Predicate{Kind: schema.ComparisonPredicate, Field: field, Terms: []schema.Comparison{c}}, nil
	}

	if len(raw.Rules) == 0 {
		return schema.Predicate{}, &schema.InvalidPredicateError{
			Field:  field,
			Rule:   "[]",
			Reason: "a conjunction needs at least one rule",
		}
	}
	terms := make([]schema.Comparison, len(raw.Rules))
	for i, rule := range raw.Rules {
		c, err := CompileRule(field, rule)
		if err != nil {
			return schema.Predicate{}, err
		}
		terms[i] = c
	}
	return schema.NewConjunction(field, terms), nil
}

// CompileRule compiles one "<operator> <value>" rule expression.
func CompileRule(field, rule string) (schema.Comparison, error) {
	tokens := strings.Fields(rule)
	if len(tokens) != 2 {
		return schema.Comparison{}, &schema.InvalidPredicateError{
			Field:  field,
			Rule:   rule,
			Reason: "expected exactly two tokens: <operator> <value>",
		}
	}
	op, ok := schema.RuleOperators[tokens[0]]
	if !ok {
		return schema.Comparison{}, &schema.InvalidPredicateError{
			Field:  field,
			Rule:   rule,
			Reason: "unknown operator " + tokens[0] + " (expected one of <, <=, ==, >=, >)",
		}
	}
	return schema.Comparison{Field: field, Operator: op, Value: tokens[1]}, nil
}

// ruleCache memoizes compiled rules across grid points.
// Results are identical with or without it.
type ruleCache struct {
	entries sync.Map // ruleKey -> schema.Comparison
}

type ruleKey struct {
	field string
	rule  string
}

// compile returns the cached comparison for rule or compiles and stores it.
// Failures are never cached.
func (rc *ruleCache) compile(field, rule string) (schema.Comparison, error) {
	if rc == nil {
		return CompileRule(field, rule)
	}
	key := ruleKey{field: field, rule: rule}
	if v, ok := rc.entries.Load(key); ok {
		return v.(schema.Comparison), nil
	}
	c, err := CompileRule(field, rule)
	if err != nil {
		return c, err
	}
	rc.entries.Store(key, c)
	return c, nil
}

// compilePredicate is CompilePredicate backed by the cache.
func (rc *ruleCache) compilePredicate(field string, raw schema.RawPredicate) (schema.Predicate, error) {
	if rc == nil || raw.IsMissing() {
		return CompilePredicate(field, raw)
	}
	if !raw.IsList {
		c, err := rc.compile(field, raw.Rules[0])
		if err != nil {
			return schema.Predicate{}, err
		}
		return schema.Predicate{Kind: schema.ComparisonPredicate, Field: field, Terms: []schema.Comparison{c}}, nil
	}
	if len(raw.Rules) == 0 {
		return CompilePredicate(field, raw)
	}
	terms := make([]schema.Comparison, len(raw.Rules))
	for i, rule := range raw.Rules {
		c, err := rc.compile(field, rule)
		if err != nil {
			return schema.Predicate{}, err
		}
		terms[i] = c
	}
	return schema.NewConjunction(field, terms), nil
}
