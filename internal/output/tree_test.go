package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthkit/cli/internal/core"
)

func TestRenderConstructTree(t *testing.T) {
	app := core.NewApp(core.AppProps{DefaultEnv: &core.Environment{Account: "acct", Region: "region"}})
	stage, err := core.NewStage(app, "MyStage", core.StageProps{})
	require.NoError(t, err)
	_, err = core.NewStack(stage, "MyStack", core.StackProps{})
	require.NoError(t, err)
	_, err = core.NewStack(app, "RootStack", core.StackProps{})
	require.NoError(t, err)

	rendered := RenderConstructTree(app)

	assert.Contains(t, rendered, "(app)")
	assert.Contains(t, rendered, "MyStage")
	assert.Contains(t, rendered, "MyStack")
	assert.Contains(t, rendered, "stack MyStage-MyStack")
	assert.Contains(t, rendered, "stack RootStack (acct/region)")
	assert.Contains(t, rendered, treeLast)

	// One line per node.
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Len(t, lines, 4)
}

func TestRenderConstructTreeDeclarationOrder(t *testing.T) {
	app := core.NewApp(core.AppProps{})
	for _, name := range []string{"zeta", "alpha"} {
		_, err := core.NewStack(app, name, core.StackProps{})
		require.NoError(t, err)
	}

	rendered := RenderConstructTree(app)
	assert.Less(t, strings.Index(rendered, "zeta"), strings.Index(rendered, "alpha"))
}
