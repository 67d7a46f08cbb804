package pmml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Version: "4.2",
		Xmlns:   "http://www.dmg.org/PMML-4_2",
		DataDictionary: DataDictionary{
			NumberOfFields: 2,
			Fields: []DataField{
				{Name: "wage", DataType: "double", OpType: "continuous"},
				{Name: "role", DataType: "string", OpType: "categorical", Values: []Value{{Value: "engineer"}, {Value: "R&D"}}},
			},
		},
		Scorecard: Scorecard{
			ModelName:    "wage",
			FunctionName: "regression",
			MiningSchema: MiningSchema{Fields: []MiningField{{Name: "wage", UsageType: "active"}, {Name: "role"}}},
			Characteristics: Characteristics{Items: []Characteristic{{
				Name:          "wage_score",
				ReasonCode:    "RC1",
				BaselineScore: "0",
				Attributes: []Attribute{
					{ReasonCode: "W1", PartialScore: "20", SimplePredicate: &SimplePredicate{Field: "wage", Operator: "isMissing"}},
					{ReasonCode: "W2", PartialScore: "10", CompoundPredicate: &CompoundPredicate{
						BooleanOperator: "and",
						Predicates: []SimplePredicate{
							{Field: "wage", Operator: "greaterThan", Value: "1000"},
							{Field: "wage", Operator: "lessOrEqual", Value: "2500"},
						},
					}},
				},
			}}},
		},
	}
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<PMML "))
	assert.True(t, strings.HasSuffix(text, "</PMML>\n"))
	assert.Contains(t, text, "\n  <Header></Header>\n")
	assert.Contains(t, text, `<MiningField name="role"></MiningField>`)
	assert.Contains(t, text, `<Value value="R&amp;D"></Value>`)
	assert.Contains(t, text, `<SimplePredicate field="wage" operator="isMissing"></SimplePredicate>`)
	assert.NotContains(t, text, "CompoundPredicate field")
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := Encode(sampleDocument())
	require.NoError(t, err)
	for range 5 {
		again, err := Encode(sampleDocument())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "PMML", decoded.XMLName.Local)
	assert.Equal(t, doc.DataDictionary, decoded.DataDictionary)
	assert.Equal(t, doc.Scorecard.Characteristics, decoded.Scorecard.Characteristics)
	assert.Nil(t, decoded.Scorecard.Characteristics.Items[0].Attributes[0].CompoundPredicate)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("<PMML"))
	assert.Error(t, err)
}
