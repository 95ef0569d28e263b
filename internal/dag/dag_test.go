package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/synthkit/cli/internal/errors"
)

func TestAddVertex(t *testing.T) {
	d := NewDirectedAcyclicGraph[string]()
	require.NoError(t, d.AddVertex("a", 0))
	require.NoError(t, d.AddVertex("b", 1))

	err := d.AddVertex("a", 2)
	assert.Error(t, err, "duplicate vertex ids are rejected")
}

func TestAddDependenciesValidation(t *testing.T) {
	d := NewDirectedAcyclicGraph[string]()
	require.NoError(t, d.AddVertex("a", 0))

	assert.Error(t, d.AddDependencies("missing", []string{"a"}))
	assert.Error(t, d.AddDependencies("a", []string{"missing"}))

	err := d.AddDependencies("a", []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrCycle)
}

func TestCycleDetectionRollsBack(t *testing.T) {
	d := NewDirectedAcyclicGraph[string]()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.AddVertex(id, i))
	}
	require.NoError(t, d.AddDependencies("b", []string{"a"}))
	require.NoError(t, d.AddDependencies("c", []string{"b"}))

	err := d.AddDependencies("a", []string{"c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrCycle)

	ce := AsCycleError[string](err)
	require.NotNil(t, ce)
	assert.NotEmpty(t, ce.Cycle)

	// The offending edge was rolled back; the graph still sorts.
	order, err := d.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopologicalSortDependenciesFirst(t *testing.T) {
	d := NewDirectedAcyclicGraph[string]()
	for i, id := range []string{"web", "api", "db"} {
		require.NoError(t, d.AddVertex(id, i))
	}
	require.NoError(t, d.AddDependencies("web", []string{"api"}))
	require.NoError(t, d.AddDependencies("api", []string{"db"}))

	order, err := d.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "api", "web"}, order)
}

func TestTopologicalSortInsertionOrderTies(t *testing.T) {
	d := NewDirectedAcyclicGraph[string]()
	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, d.AddVertex(id, i))
	}

	order, err := d.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, order, "no edges: insertion order wins")
}

func TestAsCycleErrorNonCycle(t *testing.T) {
	assert.Nil(t, AsCycleError[string](assert.AnError))
	assert.Nil(t, AsCycleError[string](nil))
}
