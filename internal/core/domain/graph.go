package domain

import (
	"iter"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// StageGraph is the dependency graph of packaging stages. Stages form a
// small chain in practice (build -> stage -> finalize) but the graph accepts
// any acyclic shape.
type StageGraph struct {
	stages map[string]StageSpec
	order  []string
}

// NewStageGraph creates an empty StageGraph.
func NewStageGraph() *StageGraph {
	return &StageGraph{
		stages: make(map[string]StageSpec),
	}
}

// AddStage adds a stage to the graph.
// It returns an error if a stage with the same name already exists.
func (g *StageGraph) AddStage(s StageSpec) error {
	if _, exists := g.stages[s.Name]; exists {
		return zerr.With(ErrStageAlreadyExists, "stage", s.Name)
	}
	g.stages[s.Name] = s
	return nil
}

// Stage returns the stage with the given name.
func (g *StageGraph) Stage(name string) (StageSpec, error) {
	s, ok := g.stages[name]
	if !ok {
		return StageSpec{}, zerr.With(ErrStageNotFound, "stage", name)
	}
	return s, nil
}

// Count returns the number of stages in the graph.
func (g *StageGraph) Count() int {
	return len(g.stages)
}

// Validate checks for unknown dependencies and cycles using a topological
// sort, and records the execution order. Roots are visited in name order so
// the order is deterministic.
func (g *StageGraph) Validate() error {
	g.order = make([]string, 0, len(g.stages))
	state := make(map[string]int, len(g.stages)) // 0 unvisited, 1 visiting, 2 done
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = 1
		path = append(path, name)

		stage, exists := g.stages[name]
		if !exists {
			return zerr.With(ErrMissingStageDependency, "dependency", name)
		}

		for _, dep := range stage.DependsOn {
			switch state[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[name] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, name)
		return nil
	}

	names := make([]string, 0, len(g.stages))
	for name := range g.stages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func cycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	var b strings.Builder
	for _, node := range path[start:] {
		b.WriteString(node)
		b.WriteString(" -> ")
	}
	b.WriteString(dep)
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}

// Walk returns an iterator over stages in execution order.
// It assumes Validate has been called and returned nil.
func (g *StageGraph) Walk() iter.Seq[StageSpec] {
	return func(yield func(StageSpec) bool) {
		for _, name := range g.order {
			if !yield(g.stages[name]) {
				return
			}
		}
	}
}
