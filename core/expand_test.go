package core

import (
	"context"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridJSON = `{
	"model_name": "base",
	"data_fields": [
		{"name": "age", "dataType": "integer", "optype": "continuous"},
		{"name": "role", "dataType": "string", "optype": "categorical"}
	],
	"characteristics": [
		{
			"name": "age",
			"attributes": [
				{"reasonCode": "A1", "partialScore": 5, "predicate": "<= $P1"},
				{"reasonCode": "A2", "partialScore": 10, "predicate": "> $P1"}
			]
		},
		{
			"name": "role",
			"attributes": [
				{"reasonCode": "R1", "partialScore": 3, "predicate": "== ${P2}"}
			]
		}
	],
	"param_grid": {
		"P2": {"x": 10, "y": 20},
		"P1": {"a": 1, "b": 2}
	}
}`

func modelNames(results []schema.ModelResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}

func TestExpandGridOrder(t *testing.T) {
	desc := mustParse(t, gridJSON)
	points, err := ExpandGrid(desc.ParamGrid)
	require.NoError(t, err)
	require.Len(t, points, 4)

	names := make([]string, len(points))
	for i, p := range points {
		names[i] = p.ModelName("base")
	}
	assert.Equal(t, []string{"base_a_x", "base_a_y", "base_b_x", "base_b_y"}, names)
	assert.Equal(t, map[string]string{"P1": "2", "P2": "10"}, points[2].Params())
	assert.Equal(t, "P1", points[0].Choices[0].Param)
}

func TestExpandGridEmpty(t *testing.T) {
	points, err := ExpandGrid(nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "base", points[0].ModelName("base"))
	assert.Empty(t, points[0].Params())

	points, err = ExpandGrid(schema.NewParamGrid())
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestExpandGridMalformed(t *testing.T) {
	grid := schema.NewParamGrid().Add("a", "x", schema.NewLiteral("1")).Declare("b")
	_, err := ExpandGrid(grid)
	var me *schema.MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "param_grid.b", me.Path)

	grid = schema.NewParamGrid().Add("a", "x", schema.Literal{})
	_, err = ExpandGrid(grid)
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "param_grid.a.x", me.Path)
}

func TestExpandGridRejectsNameCollisions(t *testing.T) {
	grid := schema.NewParamGrid().
		Add("p", "a_b", schema.NewLiteral("1")).
		Add("p", "a", schema.NewLiteral("2")).
		Add("q", "c", schema.NewLiteral("3")).
		Add("q", "b_c", schema.NewLiteral("4"))
	_, err := ExpandGrid(grid)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMalformedInput)

	var me *schema.MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "param_grid", me.Path)
	assert.Contains(t, me.Reason, "{p=a_b, q=c}")
	assert.Contains(t, me.Reason, "{p=a, q=b_c}")
	assert.Contains(t, me.Reason, `"_a_b_c"`)
}

func TestExpanderRejectsNameCollisionsBeforeBuilding(t *testing.T) {
	desc := mustParse(t, `{
		"model_name": "base",
		"data_fields": [{"name": "age", "dataType": "integer", "optype": "continuous"}],
		"characteristics": [
			{"name": "age", "attributes": [{"reasonCode": "A", "partialScore": 1, "predicate": "<= $p"}]}
		],
		"param_grid": {"p": {"a_b": 1, "a": 2}, "q": {"c": 3, "b_c": 4}}
	}`)
	results, err := NewExpander(2, false).Expand(context.Background(), desc)
	assert.ErrorIs(t, err, schema.ErrMalformedInput)
	assert.Nil(t, results)
}

func TestExpanderCompilesEveryPoint(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		results, err := NewExpander(workers, false).Expand(context.Background(), mustParse(t, gridJSON))
		require.NoError(t, err)
		assert.Equal(t, []string{"base_a_x", "base_a_y", "base_b_x", "base_b_y"}, modelNames(results))

		for _, r := range results {
			require.NoError(t, r.Err)
			assert.NotEmpty(t, r.Document)
			assert.Contains(t, string(r.Document), `modelName="`+r.Name+`"`)
		}
		assert.Equal(t, "2", results[3].Model.Characteristics[0].Attributes[0].Predicate.Terms[0].Value)
		assert.Equal(t, "20", results[3].Model.Characteristics[1].Attributes[0].Predicate.Terms[0].Value)
	}
}

func TestExpanderIsDeterministic(t *testing.T) {
	first, err := NewExpander(1, false).Expand(context.Background(), mustParse(t, gridJSON))
	require.NoError(t, err)
	second, err := NewExpander(4, false).Expand(context.Background(), mustParse(t, gridJSON))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Document, second[i].Document)
	}
}

func TestExpanderWithoutGrid(t *testing.T) {
	results, err := NewExpander(0, false).Expand(context.Background(), mustParse(t, wageJSON))
	require.NoError(t, err)
	require.Len(t, results, 1)
	// role has no value without a grid
	assert.Equal(t, "wage_model", results[0].Name)
	assert.ErrorIs(t, results[0].Err, schema.ErrUnresolvedParameter)
}

const partialGridJSON = `{
	"model_name": "base",
	"data_fields": [{"name": "age", "dataType": "integer", "optype": "continuous"}],
	"characteristics": [{
		"name": "age",
		"attributes": [{"reasonCode": "A1", "partialScore": 5, "predicate": "$op 18"}]
	}],
	"param_grid": {"op": {"le": "<=", "bad": "=~", "gt": ">"}}
}`

func TestExpanderIsolatesFailures(t *testing.T) {
	results, err := NewExpander(2, false).Expand(context.Background(), mustParse(t, partialGridJSON))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "base_bad", results[1].Name)
	assert.ErrorIs(t, results[1].Err, schema.ErrInvalidPredicate)
	assert.Contains(t, results[1].Err.Error(), `model "base_bad"`)
	assert.Nil(t, results[1].Document)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, schema.GreaterThan, results[2].Model.Characteristics[0].Attributes[0].Predicate.Terms[0].Operator)
}

func TestExpanderFailFast(t *testing.T) {
	results, err := NewExpander(1, true).Expand(context.Background(), mustParse(t, partialGridJSON))
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidPredicate)
	require.Len(t, results, 3)

	// With one worker the point after the failure never compiles
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[2].Err, context.Canceled)
}

func TestExpanderRejectsMalformedUpFront(t *testing.T) {
	desc := mustParse(t, `{"model_name": "m", "data_fields": [], "characteristics": [{"name": "a", "attributes": [{"partialScore": 1, "predicate": null}]}]}`)
	results, err := NewExpander(2, false).Expand(context.Background(), desc)
	assert.ErrorIs(t, err, schema.ErrMalformedInput)
	assert.Nil(t, results)
}

func TestExpanderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := NewExpander(2, false).Expand(ctx, mustParse(t, gridJSON))
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
