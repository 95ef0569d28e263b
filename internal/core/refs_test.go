package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefToken(t *testing.T) {
	ref := Ref{OwnerPath: "MyStage/Stack1", LogicalID: "db", Attr: "endpoint"}
	assert.Equal(t, "${ref:MyStage/Stack1:db:endpoint}", ref.Token())
}

func TestFindRefsNestedProperties(t *testing.T) {
	props := map[string]any{
		"plain": "no token here",
		"direct": "${ref:Stack1:db:endpoint}",
		"nested": map[string]any{
			"list": []any{
				"${ref:Stack2:queue:url}",
				map[string]any{"deep": "${ref:Stack1:db:port}"},
			},
		},
		"number": 42,
	}

	refs := findRefs(props)
	require.Len(t, refs, 3)

	seen := make(map[string]Ref)
	for _, r := range refs {
		seen[r.Token()] = r
	}
	assert.Contains(t, seen, "${ref:Stack1:db:endpoint}")
	assert.Contains(t, seen, "${ref:Stack2:queue:url}")
	assert.Contains(t, seen, "${ref:Stack1:db:port}")
	assert.Equal(t, Ref{OwnerPath: "Stack2", LogicalID: "queue", Attr: "url"}, seen["${ref:Stack2:queue:url}"])
}

func TestFindRefsMultipleTokensInOneString(t *testing.T) {
	refs := findRefs("${ref:A:x:attr1} and ${ref:B:y:attr2}")
	require.Len(t, refs, 2)
	assert.Equal(t, "A", refs[0].OwnerPath)
	assert.Equal(t, "B", refs[1].OwnerPath)
}

func TestFindStack(t *testing.T) {
	app := NewApp(AppProps{})
	stage, err := NewStage(app, "MyStage", StageProps{})
	require.NoError(t, err)
	inner, err := NewStack(stage, "Inner", StackProps{})
	require.NoError(t, err)
	root, err := NewStack(app, "Root", StackProps{})
	require.NoError(t, err)

	assert.Equal(t, inner, FindStack(app, "MyStage/Inner"))
	assert.Equal(t, root, FindStack(app, "Root"))
	assert.Nil(t, FindStack(app, "MyStage"), "a stage path does not name a stack")
	assert.Nil(t, FindStack(app, "missing"))

	// Resolution works from any construct, not just the root.
	assert.Equal(t, root, FindStack(inner, "Root"))
}
