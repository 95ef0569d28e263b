package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthkit/cli/internal/assembly"
	"github.com/synthkit/cli/internal/core"
	serrors "github.com/synthkit/cli/internal/errors"
	"github.com/synthkit/cli/internal/render"
)

func TestSynthesizeEmptyApp(t *testing.T) {
	app := core.NewApp(core.AppProps{})

	m, err := Synth(app)
	require.NoError(t, err)
	assert.Equal(t, assembly.ManifestVersion, m.Version)
	assert.Empty(t, m.Artifacts)
}

func TestSynthesizeRootStacks(t *testing.T) {
	app := core.NewApp(core.AppProps{DefaultEnv: &core.Environment{Account: "acct", Region: "region"}})
	stack1, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)
	_, err = stack1.AddResource("db", "storage/database", map[string]any{"size": 10})
	require.NoError(t, err)
	stack2, err := core.NewStack(app, "Stack2", core.StackProps{})
	require.NoError(t, err)
	require.NoError(t, stack2.AddDependency(stack1, "reads the database"))

	m, err := Synth(app)
	require.NoError(t, err)

	stacks := m.Stacks()
	require.Len(t, stacks, 2)
	assert.Equal(t, "Stack1", stacks[0].ID, "declaration order preserved")
	assert.Equal(t, "Stack2", stacks[1].ID)
	assert.Equal(t, []string{"Stack1"}, stacks[1].Dependencies)

	require.NotNil(t, stacks[0].Environment)
	assert.Equal(t, "acct", stacks[0].Environment.Account)

	tmpl := stacks[0].Template
	require.NotNil(t, tmpl)
	assert.Equal(t, "Stack1", tmpl["identity"])
	resources, ok := tmpl["resources"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, resources, "db")
}

func TestSynthesizeScopeIsolation(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	_, err := core.NewStack(app, "RootStack", core.StackProps{})
	require.NoError(t, err)
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	_, err = core.NewStack(stage, "InnerStack", core.StackProps{})
	require.NoError(t, err)

	m, err := Synth(app)
	require.NoError(t, err)

	// The root manifest holds only the root stack directly.
	stacks := m.Stacks()
	require.Len(t, stacks, 1)
	assert.Equal(t, "RootStack", stacks[0].ID)

	// The stage's stack appears only through the embedded nested manifest.
	stages := m.Stages()
	require.Len(t, stages, 1)
	assert.Equal(t, "MyStage", stages[0].ID)
	nested := stages[0].Manifest
	require.NotNil(t, nested)
	require.Len(t, nested.Stacks(), 1)
	assert.Equal(t, "MyStage-InnerStack", nested.Stacks()[0].ID)
	assert.Equal(t, "MyStage", nested.Scope)

	// The stage construct itself holds the nested manifest too.
	assert.Equal(t, nested, stage.Manifest())
}

func TestSynthesizeNestedStages(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	outer, err := core.NewStage(app, "Outer", core.StageProps{})
	require.NoError(t, err)
	inner, err := core.NewStage(outer, "Inner", core.StageProps{})
	require.NoError(t, err)
	_, err = core.NewStack(inner, "Deep", core.StackProps{})
	require.NoError(t, err)

	m, err := Synth(app)
	require.NoError(t, err)

	outerManifest := m.Stages()[0].Manifest
	require.NotNil(t, outerManifest)
	assert.Empty(t, outerManifest.Stacks())

	innerStages := outerManifest.Stages()
	require.Len(t, innerStages, 1)
	assert.Equal(t, "Outer-Inner", innerStages[0].ID)
	require.Len(t, innerStages[0].Manifest.Stacks(), 1)
	assert.Equal(t, "Outer-Inner-Deep", innerStages[0].Manifest.Stacks()[0].ID)
}

func TestAutomaticDependencyFromReference(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	unit1, err := core.NewStack(stage, "Unit1", core.StackProps{})
	require.NoError(t, err)
	db, err := unit1.AddResource("db", "storage/database", nil)
	require.NoError(t, err)
	unit2, err := core.NewStack(stage, "Unit2", core.StackProps{})
	require.NoError(t, err)
	_, err = unit2.AddResource("api", "compute/service", map[string]any{
		"connection": db.Attr("endpoint"),
	})
	require.NoError(t, err)

	// No explicit AddDependency call anywhere.
	m, err := Synth(app)
	require.NoError(t, err)

	nested := m.Stages()[0].Manifest
	artifact := nested.Stack("MyStage-Unit2")
	require.NotNil(t, artifact)
	assert.Contains(t, artifact.Dependencies, "MyStage-Unit1")
}

func TestCrossBoundaryReferenceFailsValidation(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	rootStack, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)
	db, err := rootStack.AddResource("db", "storage/database", nil)
	require.NoError(t, err)
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	inner, err := core.NewStack(stage, "Stack2", core.StackProps{})
	require.NoError(t, err)
	_, err = inner.AddResource("api", "compute/service", map[string]any{
		"connection": db.Attr("endpoint"),
	})
	require.NoError(t, err)

	e := New(render.NewTemplateRenderer())
	m, err := e.Synthesize(app)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrCrossBoundary)
	assert.Nil(t, m, "no manifest on failure, partial or otherwise")
	assert.Equal(t, StateFailed, e.State())
}

func TestDependencyCycleFailsValidation(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stack1, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)
	stack2, err := core.NewStack(app, "Stack2", core.StackProps{})
	require.NoError(t, err)
	require.NoError(t, stack1.AddDependency(stack2, ""))
	require.NoError(t, stack2.AddDependency(stack1, ""))

	e := New(render.NewTemplateRenderer())
	m, err := e.Synthesize(app)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrCycle)
	assert.Nil(t, m)
	assert.Equal(t, StateFailed, e.State())
}

func TestEngineSingleUse(t *testing.T) {
	app := core.NewApp(core.AppProps{})

	e := New(render.NewTemplateRenderer())
	_, err := e.Synthesize(app)
	require.NoError(t, err)
	assert.Equal(t, StateAssembled, e.State())

	_, err = e.Synthesize(app)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrLifecycle)
}

func TestSynthesizeRejectsStackScope(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stack, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)

	e := New(render.NewTemplateRenderer())
	_, err = e.Synthesize(stack)
	require.Error(t, err)
	assert.Equal(t, StateFailed, e.State())
}

func TestSynthesizeUnlocksTree(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	_, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)

	_, err = Synth(app)
	require.NoError(t, err)

	assert.False(t, app.Node().Locked())
	_, err = core.NewStack(app, "Stack2", core.StackProps{})
	assert.NoError(t, err, "the tree is mutable again after synthesis")
}

func TestPreparePostOrder(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	group, err := core.NewContainer(app, "group")
	require.NoError(t, err)
	_, err = core.NewStack(group, "Child", core.StackProps{})
	require.NoError(t, err)

	var visited []string
	probe := core.AspectFunc(func(c core.Construct) error {
		visited = append(visited, c.Node().Path())
		return nil
	})
	require.NoError(t, app.Node().ApplyAspect(probe))

	_, err = Synth(app)
	require.NoError(t, err)

	// Children are visited before their parents.
	assert.Equal(t, []string{"group/Child", "group", ""}, visited)
}

func TestAspectDoesNotCrossStageBoundary(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	_, err := core.NewStack(app, "RootStack", core.StackProps{})
	require.NoError(t, err)
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	_, err = core.NewStack(stage, "InnerStack", core.StackProps{})
	require.NoError(t, err)

	var visited []string
	probe := core.AspectFunc(func(c core.Construct) error {
		visited = append(visited, c.Node().Path())
		return nil
	})
	require.NoError(t, app.Node().ApplyAspect(probe))

	_, err = Synth(app)
	require.NoError(t, err)

	assert.Contains(t, visited, "RootStack")
	assert.NotContains(t, visited, "MyStage/InnerStack",
		"a root aspect never reaches inside a child stage")
}

func TestAspectAttachedInsideStage(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	stack, err := core.NewStack(stage, "InnerStack", core.StackProps{})
	require.NoError(t, err)
	_, err = stack.AddResource("db", "storage/database", map[string]any{})
	require.NoError(t, err)

	tagged := core.AspectFunc(func(c core.Construct) error {
		if s, ok := c.(*core.Stack); ok {
			for _, r := range s.Resources() {
				r.SetProperty("tagged", true)
			}
		}
		return nil
	})
	require.NoError(t, stage.Node().ApplyAspect(tagged))

	m, err := Synth(app)
	require.NoError(t, err)

	nested := m.Stages()[0].Manifest
	tmpl := nested.Stacks()[0].Template
	resources := tmpl["resources"].(map[string]any)
	db := resources["db"].(map[string]any)
	props := db["properties"].(map[string]any)
	assert.Equal(t, true, props["tagged"], "aspect mutations are visible to the render pass")
}

func TestRenderErrorAbortsSynthesis(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stack, err := core.NewStack(app, "Stack1", core.StackProps{})
	require.NoError(t, err)
	_, err = stack.AddResource("bad", "", nil)
	require.NoError(t, err)

	m, synthErr := Synth(app)
	require.Error(t, synthErr)
	assert.ErrorIs(t, synthErr, serrors.ErrRender)
	assert.Nil(t, m)
}

func TestSynthesizeStageScopeDirectly(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	_, err = core.NewStack(stage, "Inner", core.StackProps{})
	require.NoError(t, err)

	m, err := Synth(stage)
	require.NoError(t, err)
	assert.Equal(t, "MyStage", m.Scope)
	require.Len(t, m.Stacks(), 1)
	assert.Equal(t, "MyStage-Inner", m.Stacks()[0].ID)
}
