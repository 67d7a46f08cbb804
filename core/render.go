package core

import (
	"strconv"

	"github.com/huangsam/scorecard/internal/pmml"
	"github.com/huangsam/scorecard/schema"
)

// BuildDocument walks the model and returns its PMML document tree.
// The model is assumed valid; nothing is re-validated here.
func BuildDocument(model *schema.Model) *pmml.Document {
	doc := &pmml.Document{
		Version: schema.PMMLVersion,
		Xmlns:   schema.PMMLNamespace,
		DataDictionary: pmml.DataDictionary{
			NumberOfFields: len(model.Fields),
			Fields:         make([]pmml.DataField, len(model.Fields)),
		},
		Scorecard: pmml.Scorecard{
			ModelName:           model.Name,
			FunctionName:        schema.FunctionName,
			UseReasonCodes:      "true",
			ReasonCodeAlgorithm: schema.ReasonCodeAlgorithm,
			InitialScore:        schema.InitialScore,
			BaselineScore:       model.BaselineScore,
			BaselineMethod:      schema.BaselineMethod,
			MiningSchema:        pmml.MiningSchema{Fields: make([]pmml.MiningField, len(model.Fields))},
			Output:              outputBlock(),
			Characteristics:     pmml.Characteristics{Items: make([]pmml.Characteristic, len(model.Characteristics))},
		},
	}
	if doc.Scorecard.BaselineScore == "" {
		doc.Scorecard.BaselineScore = schema.DefaultBaseline
	}

	for i, f := range model.Fields {
		df := pmml.DataField{
			Name:     f.Name,
			DataType: string(f.DataType),
			OpType:   string(f.OpType),
		}
		for _, v := range f.Values {
			df.Values = append(df.Values, pmml.Value{Value: v})
		}
		doc.DataDictionary.Fields[i] = df
		doc.Scorecard.MiningSchema.Fields[i] = pmml.MiningField{Name: f.Name, UsageType: string(f.UsageType)}
	}

	for i, c := range model.Characteristics {
		pc := pmml.Characteristic{
			Name:          c.ScoreName(),
			ReasonCode:    c.ReasonCodeGroup(),
			BaselineScore: c.BaselineScore,
			Attributes:    make([]pmml.Attribute, len(c.Attributes)),
		}
		for j, a := range c.Attributes {
			pc.Attributes[j] = renderAttribute(a)
		}
		doc.Scorecard.Characteristics.Items[i] = pc
	}
	return doc
}

// Render produces the serialized PMML document for the model.
func Render(model *schema.Model) ([]byte, error) {
	return pmml.Encode(BuildDocument(model))
}

// outputBlock declares the predicted score and the ranked reason codes.
func outputBlock() pmml.Output {
	fields := make([]pmml.OutputField, 0, schema.ReasonCodeCount+1)
	fields = append(fields, pmml.OutputField{
		Name:     schema.RiskScoreField,
		Feature:  "predictedValue",
		DataType: string(schema.DoubleType),
		OpType:   string(schema.Continuous),
	})
	for rank := 1; rank <= schema.ReasonCodeCount; rank++ {
		fields = append(fields, pmml.OutputField{
			Name:     schema.ReasonCodePrefix + strconv.Itoa(rank),
			Rank:     strconv.Itoa(rank),
			Feature:  "reasonCode",
			DataType: string(schema.StringType),
			OpType:   string(schema.Categorical),
		})
	}
	return pmml.Output{Fields: fields}
}

func renderAttribute(a schema.Attribute) pmml.Attribute {
	attr := pmml.Attribute{
		ReasonCode:   a.ReasonCode,
		PartialScore: a.PartialScore,
	}
	p := a.Predicate
	switch p.Kind {
	case schema.MissingPredicate:
		attr.SimplePredicate = &pmml.SimplePredicate{Field: p.Field, Operator: string(schema.IsMissing)}
	case schema.ComparisonPredicate:
		sp := simplePredicate(p.Terms[0])
		attr.SimplePredicate = &sp
	case schema.ConjunctionPredicate:
		cp := &pmml.CompoundPredicate{
			BooleanOperator: "and",
			Predicates:      make([]pmml.SimplePredicate, len(p.Terms)),
		}
		for k, t := range p.Terms {
			cp.Predicates[k] = simplePredicate(t)
		}
		attr.CompoundPredicate = cp
	}
	return attr
}

func simplePredicate(c schema.Comparison) pmml.SimplePredicate {
	return pmml.SimplePredicate{Field: c.Field, Operator: string(c.Operator), Value: c.Value}
}
