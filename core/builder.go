package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/scorecard/schema"
)

// ModelBuilder builds a canonical model from a description.
// Steps are chained and the first failure short-circuits the rest.
type ModelBuilder struct {
	desc   *schema.Description
	params map[string]string
	name   string
	cache  *ruleCache
	model  *schema.Model
	err    error
}

// NewModelBuilder is the starting point for building a model.
func NewModelBuilder(desc *schema.Description) *ModelBuilder {
	b := &ModelBuilder{
		desc:  desc,
		model: &schema.Model{},
	}
	if desc == nil {
		b.err = &schema.MalformedInputError{Reason: "description is empty"}
	}
	return b
}

// WithParams sets the resolved parameter mapping used for placeholders.
func (b *ModelBuilder) WithParams(params map[string]string) *ModelBuilder {
	b.params = params
	return b
}

// WithName overrides the model name taken from the description.
func (b *ModelBuilder) WithName(name string) *ModelBuilder {
	b.name = name
	return b
}

// withCache shares compiled rules with other builders.
func (b *ModelBuilder) withCache(rc *ruleCache) *ModelBuilder {
	b.cache = rc
	return b
}

// BuildHeader sets the model name and the document-level baseline score.
func (b *ModelBuilder) BuildHeader() *ModelBuilder {
	if b.err != nil {
		return b
	}
	if b.desc.ModelName == nil {
		b.err = schema.Missing("model_name")
		return b
	}
	name := b.name
	if name == "" {
		name = *b.desc.ModelName
	}
	if strings.TrimSpace(name) == "" {
		b.err = &schema.MalformedInputError{Path: "model_name", Reason: "must not be empty"}
		return b
	}
	b.model.Name = name

	baseline, err := b.score(b.desc.BaselineScore, "baseline_score", schema.DefaultBaseline)
	if err != nil {
		b.err = err
		return b
	}
	b.model.BaselineScore = baseline
	return b
}

// BuildFields validates the field declarations and copies them in order.
func (b *ModelBuilder) BuildFields() *ModelBuilder {
	if b.err != nil {
		return b
	}
	if b.desc.DataFields == nil {
		b.err = schema.Missing("data_fields")
		return b
	}

	fields := make([]schema.DataField, 0, len(b.desc.DataFields))
	seen := make(map[string]struct{}, len(b.desc.DataFields))
	for i, raw := range b.desc.DataFields {
		field, err := buildField(i, raw)
		if err != nil {
			b.err = err
			return b
		}
		if _, dup := seen[field.Name]; dup {
			b.err = &schema.SchemaError{Field: field.Name, Reason: "declared more than once"}
			return b
		}
		seen[field.Name] = struct{}{}
		fields = append(fields, field)
	}
	b.model.Fields = fields
	return b
}

// BuildCharacteristics resolves placeholders and compiles the predicates of
// every attribute, keeping declaration order.
func (b *ModelBuilder) BuildCharacteristics() *ModelBuilder {
	if b.err != nil {
		return b
	}
	if b.desc.Characteristics == nil {
		b.err = schema.Missing("characteristics")
		return b
	}
	if len(b.desc.Characteristics) == 0 {
		b.err = &schema.MalformedInputError{Path: "characteristics", Reason: "must not be empty"}
		return b
	}

	chars := make([]schema.Characteristic, 0, len(b.desc.Characteristics))
	seen := make(map[string]struct{}, len(b.desc.Characteristics))
	for i, raw := range b.desc.Characteristics {
		c, err := b.buildCharacteristic(i, raw)
		if err != nil {
			b.err = err
			return b
		}
		if _, dup := seen[c.Name]; dup {
			b.err = &schema.MalformedInputError{
				Path:   fmt.Sprintf("characteristics[%d].name", i),
				Reason: fmt.Sprintf("characteristic %q declared more than once", c.Name),
			}
			return b
		}
		seen[c.Name] = struct{}{}
		chars = append(chars, c)
	}
	b.model.Characteristics = chars
	return b
}

// Build returns the final model or the first error encountered.
func (b *ModelBuilder) Build() (*schema.Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.model, nil
}

// BuildModel runs every builder step for one parameter mapping.
func BuildModel(desc *schema.Description, params map[string]string) (*schema.Model, error) {
	return NewModelBuilder(desc).
		WithParams(params).
		BuildHeader().
		BuildFields().
		BuildCharacteristics().
		Build()
}

func buildField(i int, raw schema.RawField) (schema.DataField, error) {
	path := fmt.Sprintf("data_fields[%d]", i)
	switch {
	case raw.Name == nil:
		return schema.DataField{}, schema.Missing(path + ".name")
	case raw.DataType == nil:
		return schema.DataField{}, schema.Missing(path + ".dataType")
	case raw.OpType == nil:
		return schema.DataField{}, schema.Missing(path + ".optype")
	}
	name := *raw.Name
	if strings.TrimSpace(name) == "" {
		return schema.DataField{}, &schema.MalformedInputError{Path: path + ".name", Reason: "must not be empty"}
	}

	field := schema.DataField{
		Name:      name,
		DataType:  schema.DataType(*raw.DataType),
		OpType:    schema.OpType(*raw.OpType),
		UsageType: schema.UsageType(raw.UsageType),
	}
	if _, ok := schema.ValidDataTypes[field.DataType]; !ok {
		return schema.DataField{}, &schema.SchemaError{Field: name, Reason: fmt.Sprintf("unknown dataType %q", field.DataType)}
	}
	if _, ok := schema.ValidOpTypes[field.OpType]; !ok {
		return schema.DataField{}, &schema.SchemaError{Field: name, Reason: fmt.Sprintf("unknown optype %q", field.OpType)}
	}
	if field.UsageType != "" {
		if _, ok := schema.ValidUsageTypes[field.UsageType]; !ok {
			return schema.DataField{}, &schema.SchemaError{Field: name, Reason: fmt.Sprintf("unknown usageType %q", field.UsageType)}
		}
	}

	if len(raw.Values) > 0 {
		if !field.OpType.AllowsValues() {
			return schema.DataField{}, &schema.SchemaError{
				Field:  name,
				Reason: fmt.Sprintf("values are only allowed for categorical or ordinal fields, not %s", field.OpType),
			}
		}
		field.Values = make([]string, len(raw.Values))
		for j, v := range raw.Values {
			if !v.Set {
				return schema.DataField{}, &schema.MalformedInputError{Path: fmt.Sprintf("%s.values[%d]", path, j), Reason: "must not be null"}
			}
			field.Values[j] = v.Text
		}
	}
	return field, nil
}

func (b *ModelBuilder) buildCharacteristic(i int, raw schema.RawCharacteristic) (schema.Characteristic, error) {
	path := fmt.Sprintf("characteristics[%d]", i)
	if raw.Name == nil {
		return schema.Characteristic{}, schema.Missing(path + ".name")
	}
	name := *raw.Name
	if strings.TrimSpace(name) == "" {
		return schema.Characteristic{}, &schema.MalformedInputError{Path: path + ".name", Reason: "must not be empty"}
	}

	baseline, err := b.score(raw.BaselineScore, path+".baselineScore", schema.DefaultBaseline)
	if err != nil {
		return schema.Characteristic{}, fmt.Errorf("characteristic %q: %w", name, err)
	}

	if raw.Attributes == nil {
		return schema.Characteristic{}, schema.Missing(path + ".attributes")
	}
	if len(raw.Attributes) == 0 {
		return schema.Characteristic{}, &schema.MalformedInputError{Path: path + ".attributes", Reason: "must not be empty"}
	}

	attrs := make([]schema.Attribute, len(raw.Attributes))
	for j, ra := range raw.Attributes {
		attr, err := b.buildAttribute(name, fmt.Sprintf("%s.attributes[%d]", path, j), ra)
		if err != nil {
			return schema.Characteristic{}, fmt.Errorf("characteristic %q attribute %d: %w", name, j, err)
		}
		attrs[j] = attr
	}

	return schema.Characteristic{
		Name:          name,
		BaselineScore: baseline,
		Attributes:    attrs,
	}, nil
}

func (b *ModelBuilder) buildAttribute(field, path string, raw schema.RawAttribute) (schema.Attribute, error) {
	switch {
	case raw.ReasonCode == nil:
		return schema.Attribute{}, schema.Missing(path + ".reasonCode")
	case !raw.PartialScore.Set:
		return schema.Attribute{}, schema.Missing(path + ".partialScore")
	case !raw.Predicate.Present:
		return schema.Attribute{}, schema.Missing(path + ".predicate")
	}

	score, err := b.score(raw.PartialScore, path+".partialScore", "")
	if err != nil {
		return schema.Attribute{}, err
	}

	resolved := raw.Predicate
	if len(raw.Predicate.Rules) > 0 {
		resolved.Rules = make([]string, len(raw.Predicate.Rules))
		for k, rule := range raw.Predicate.Rules {
			r, err := Substitute(rule, b.params)
			if err != nil {
				return schema.Attribute{}, withField(err, field)
			}
			resolved.Rules[k] = r
		}
	}

	pred, err := b.cache.compilePredicate(field, resolved)
	if err != nil {
		return schema.Attribute{}, err
	}

	return schema.Attribute{
		ReasonCode:   *raw.ReasonCode,
		PartialScore: score,
		Predicate:    pred,
	}, nil
}

// score resolves placeholders in a score literal and checks it is numeric.
// An unset literal yields def, or a missing-key error when def is empty.
func (b *ModelBuilder) score(lit schema.Literal, path, def string) (string, error) {
	if !lit.Set {
		if def == "" {
			return "", schema.Missing(path)
		}
		return def, nil
	}
	text := strings.TrimSpace(lit.Text)
	if lit.Quoted && HasPlaceholder(text) {
		resolved, err := Substitute(text, b.params)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(resolved)
	}
	if !isXSDouble(text) {
		return "", &schema.MalformedInputError{Path: path, Reason: fmt.Sprintf("%q is not a number", text)}
	}
	return text, nil
}

// xsDouble matches the decimal and exponent spellings of xs:double.
var xsDouble = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// isXSDouble reports whether text is a lexical xs:double, so it can be
// written as a score attribute unchanged.
func isXSDouble(text string) bool {
	switch text {
	case "INF", "-INF", "NaN":
		return true
	}
	return xsDouble.MatchString(text)
}

// withField fills in the field of a placeholder error raised before compilation.
func withField(err error, field string) error {
	if pe, ok := err.(*schema.InvalidPredicateError); ok && pe.Field == "" {
		cp := *pe
		cp.Field = field
		return &cp
	}
	return err
}

// ValidateDescription checks that every required key of the description is
// present. It does not resolve placeholders or compile predicates, so it
// catches malformed input once before any grid point is built.
func ValidateDescription(desc *schema.Description) error {
	if desc == nil {
		return &schema.MalformedInputError{Reason: "description is empty"}
	}
	if desc.ModelName == nil {
		return schema.Missing("model_name")
	}
	if desc.DataFields == nil {
		return schema.Missing("data_fields")
	}
	for i, f := range desc.DataFields {
		path := fmt.Sprintf("data_fields[%d]", i)
		switch {
		case f.Name == nil:
			return schema.Missing(path + ".name")
		case f.DataType == nil:
			return schema.Missing(path + ".dataType")
		case f.OpType == nil:
			return schema.Missing(path + ".optype")
		}
	}
	if desc.Characteristics == nil {
		return schema.Missing("characteristics")
	}
	if len(desc.Characteristics) == 0 {
		return &schema.MalformedInputError{Path: "characteristics", Reason: "must not be empty"}
	}
	for i, c := range desc.Characteristics {
		path := fmt.Sprintf("characteristics[%d]", i)
		if c.Name == nil {
			return schema.Missing(path + ".name")
		}
		if c.Attributes == nil {
			return schema.Missing(path + ".attributes")
		}
		if len(c.Attributes) == 0 {
			return &schema.MalformedInputError{Path: path + ".attributes", Reason: "must not be empty"}
		}
		for j, a := range c.Attributes {
			apath := fmt.Sprintf("%s.attributes[%d]", path, j)
			switch {
			case a.ReasonCode == nil:
				return schema.Missing(apath + ".reasonCode")
			case !a.PartialScore.Set:
				return schema.Missing(apath + ".partialScore")
			case !a.Predicate.Present:
				return schema.Missing(apath + ".predicate")
			}
		}
	}
	return nil
}
