package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/internal/core/domain"
)

func chain(names ...string) *domain.StageGraph {
	g := domain.NewStageGraph()
	for i, name := range names {
		s := domain.StageSpec{Name: name}
		if i > 0 {
			s.DependsOn = []string{names[i-1]}
		}
		if err := g.AddStage(s); err != nil {
			panic(err)
		}
	}
	return g
}

func TestStageGraph_WalkOrder(t *testing.T) {
	g := chain("build", "stage", "finalize")
	require.NoError(t, g.Validate())

	var order []string
	for s := range g.Walk() {
		order = append(order, s.Name)
	}
	assert.Equal(t, []string{"build", "stage", "finalize"}, order)
}

func TestStageGraph_DuplicateStage(t *testing.T) {
	g := domain.NewStageGraph()
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "build"}))

	err := g.AddStage(domain.StageSpec{Name: "build"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStageAlreadyExists))
}

func TestStageGraph_MissingDependency(t *testing.T) {
	g := domain.NewStageGraph()
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "stage", DependsOn: []string{"build"}}))

	err := g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingStageDependency))
}

func TestStageGraph_CycleDetected(t *testing.T) {
	g := domain.NewStageGraph()
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "a", DependsOn: []string{"b"}}))
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "b", DependsOn: []string{"a"}}))

	err := g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCycleDetected))
}

func TestStageGraph_DeterministicRootOrder(t *testing.T) {
	// Two disconnected stages walk in name order.
	g := domain.NewStageGraph()
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "zeta"}))
	require.NoError(t, g.AddStage(domain.StageSpec{Name: "alpha"}))
	require.NoError(t, g.Validate())

	var order []string
	for s := range g.Walk() {
		order = append(order, s.Name)
	}
	assert.Equal(t, []string{"alpha", "zeta"}, order)
}

func TestStageGraph_StageLookup(t *testing.T) {
	g := chain("build")

	s, err := g.Stage("build")
	require.NoError(t, err)
	assert.Equal(t, "build", s.Name)

	_, err = g.Stage("missing")
	assert.True(t, errors.Is(err, domain.ErrStageNotFound))
}
