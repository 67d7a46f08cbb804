package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/huangsam/scorecard/schema"
)

// ExpandGrid enumerates the grid points of a parameter grid.
// Parameters are sorted by name and the first one varies slowest; options
// keep their declared order. An empty or nil grid yields one empty point.
// Two points whose option suffixes join to the same model name are rejected.
func ExpandGrid(grid *schema.ParamGrid) ([]schema.GridPoint, error) {
	if grid.IsEmpty() {
		return []schema.GridPoint{{}}, nil
	}

	names := make([]string, 0, grid.Len())
	for pair := grid.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	slices.Sort(names)

	axes := make([][]schema.ParamChoice, len(names))
	for i, name := range names {
		opts, _ := grid.Get(name)
		if opts == nil || opts.Len() == 0 {
			return nil, &schema.MalformedInputError{
				Path:   "param_grid." + name,
				Reason: "parameter must declare at least one option",
			}
		}
		for pair := opts.Oldest(); pair != nil; pair = pair.Next() {
			if !pair.Value.Set {
				return nil, &schema.MalformedInputError{
					Path:   fmt.Sprintf("param_grid.%s.%s", name, pair.Key),
					Reason: "option value must not be null",
				}
			}
			axes[i] = append(axes[i], schema.ParamChoice{Param: name, Option: pair.Key, Value: pair.Value.Text})
		}
	}

	total := 1
	for _, axis := range axes {
		total *= len(axis)
	}
	points := make([]schema.GridPoint, 0, total)

	// Odometer over the axes, last axis fastest
	idx := make([]int, len(axes))
	for range total {
		choices := make([]schema.ParamChoice, len(axes))
		for i, axis := range axes {
			choices[i] = axis[idx[i]]
		}
		points = append(points, schema.GridPoint{Choices: choices})
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(axes[i]) {
				break
			}
			idx[i] = 0
		}
	}
	if err := checkPointNames(points); err != nil {
		return nil, err
	}
	return points, nil
}

// checkPointNames fails when two grid points derive the same model name.
// Names share the base prefix, so comparing suffixes is enough.
func checkPointNames(points []schema.GridPoint) error {
	seen := make(map[string]int, len(points))
	for i, p := range points {
		suffix := p.ModelName("")
		if j, ok := seen[suffix]; ok {
			return &schema.MalformedInputError{
				Path:   "param_grid",
				Reason: fmt.Sprintf("grid points %s and %s derive the same model name suffix %q",
					pointLabel(points[j]), pointLabel(p), suffix),
			}
		}
		seen[suffix] = i
	}
	return nil
}

// pointLabel renders a grid point as {param=option, ...}.
func pointLabel(p schema.GridPoint) string {
	parts := make([]string, len(p.Choices))
	for i, c := range p.Choices {
		parts[i] = c.Param + "=" + c.Option
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Expander compiles one model per grid point.
type Expander struct {
	workers  int
	failFast bool
	cache    *ruleCache
}

// NewExpander returns an expander running on the given number of workers.
// With failFast, the first failing grid point stops the remaining work and is
// returned as the error; otherwise every point reports its own error.
func NewExpander(workers int, failFast bool) *Expander {
	if workers <= 0 {
		workers = 1
	}
	return &Expander{
		workers:  workers,
		failFast: failFast,
		cache:    &ruleCache{},
	}
}

// Expand builds and renders every grid point of the description.
// Results are in grid order regardless of scheduling. A malformed description
// or grid fails before any grid point is built.
func (e *Expander) Expand(ctx context.Context, desc *schema.Description) ([]schema.ModelResult, error) {
	if err := ValidateDescription(desc); err != nil {
		return nil, err
	}
	points, err := ExpandGrid(desc.ParamGrid)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]schema.ModelResult, len(points))
	pointCh := make(chan int, len(points))
	var wg sync.WaitGroup

	for range min(e.workers, len(points)) {
		wg.Go(func() {
			for idx := range pointCh {
				// Each worker writes only results[idx]
				if err := runCtx.Err(); err != nil {
					results[idx] = schema.ModelResult{
						Name:  points[idx].ModelName(*desc.ModelName),
						Point: points[idx],
						Err:   err,
					}
					continue
				}
				results[idx] = e.compilePoint(desc, points[idx])
				if e.failFast && results[idx].Err != nil {
					cancel()
				}
			}
		})
	}

	for i := range points {
		pointCh <- i
	}
	close(pointCh)
	wg.Wait()

	if e.failFast {
		for _, r := range results {
			if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
				return results, r.Err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// compilePoint builds and renders one grid point.
func (e *Expander) compilePoint(desc *schema.Description, point schema.GridPoint) schema.ModelResult {
	name := point.ModelName(*desc.ModelName)
	result := schema.ModelResult{Name: name, Point: point}

	model, err := NewModelBuilder(desc).
		WithParams(point.Params()).
		WithName(name).
		withCache(e.cache).
		BuildHeader().
		BuildFields().
		BuildCharacteristics().
		Build()
	if err != nil {
		result.Err = fmt.Errorf("model %q: %w", name, err)
		return result
	}

	doc, err := Render(model)
	if err != nil {
		result.Err = fmt.Errorf("model %q: %w", name, err)
		return result
	}
	result.Model = model
	result.Document = doc
	return result
}
