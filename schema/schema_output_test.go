package schema_test

import (
	"errors"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wageModel() *schema.Model {
	return &schema.Model{
		Name: "risk",
		Characteristics: []schema.Characteristic{
			{
				Name:          "wage",
				BaselineScore: "0",
				Attributes: []schema.Attribute{
					{ReasonCode: "RC1", PartialScore: "5", Predicate: schema.NewComparison("wage", schema.LessOrEqual, "1000")},
					{ReasonCode: "RC2", PartialScore: "10", Predicate: schema.NewConjunction("wage", []schema.Comparison{
						{Field: "wage", Operator: schema.GreaterThan, Value: "1000"},
						{Field: "wage", Operator: schema.LessOrEqual, Value: "2500"},
					})},
					{ReasonCode: "RC3", PartialScore: "0", Predicate: schema.NewMissing("wage")},
				},
			},
		},
	}
}

func TestSummarizeModel(t *testing.T) {
	rows := schema.SummarizeModel(wageModel())
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "wage <= 1000", rows[0].Predicate)
	assert.Equal(t, "wage > 1000 && wage <= 2500", rows[1].Predicate)
	assert.Equal(t, "wage missing", rows[2].Predicate)
	assert.Equal(t, "RC3", rows[2].ReasonCode)
	assert.Equal(t, "risk", rows[2].Model)

	assert.Nil(t, schema.SummarizeModel(nil))
}

func TestSummarizeResults(t *testing.T) {
	point := schema.GridPoint{Choices: []schema.ParamChoice{
		{Param: "a", Option: "x", Value: "1"},
		{Param: "b", Option: "y", Value: "2"},
	}}
	results := []schema.ModelResult{
		{Name: "risk_x_y", Point: point, Model: wageModel()},
		{Name: "risk_x_z", Err: errors.New("boom")},
	}

	summaries := schema.SummarizeResults(results)
	require.Len(t, summaries, 2)

	assert.Equal(t, schema.ModelOK, summaries[0].Status)
	assert.Equal(t, "a=x, b=y", summaries[0].Params)
	assert.Len(t, summaries[0].Rows, 3)

	assert.Equal(t, schema.ModelFailed, summaries[1].Status)
	assert.Equal(t, "boom", summaries[1].Error)
	assert.Empty(t, summaries[1].Rows)
}
