package output

import (
	"strings"

	"github.com/synthkit/cli/internal/core"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 30
)

// RenderConstructTree renders the construct tree rooted at c, one line per
// node, with a kind/identity description aligned at a fixed column.
// Children appear in declaration order.
func RenderConstructTree(c core.Construct) string {
	var sb strings.Builder
	renderConstruct(&sb, c, "", true, true)
	return sb.String()
}

func renderConstruct(sb *strings.Builder, c core.Construct, prefix string, isRoot, isLast bool) {
	styles := GetStyles()
	n := c.Node()

	if isRoot {
		name := n.ID()
		if name == "" {
			name = "(app)"
		}
		sb.WriteString(styles.Bold.Render(name))
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + n.ID()

		if desc := describeConstruct(c); desc != "" {
			padding := descriptionColumn - len(line)
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += styles.Muted.Render(desc)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	children := n.Children()
	for i, child := range children {
		childIsLast := i == len(children)-1

		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + treeSpace
		} else {
			childPrefix = prefix + treeVert
		}

		renderConstruct(sb, child, childPrefix, false, childIsLast)
	}
}

// describeConstruct summarizes a node for the tree's description column.
func describeConstruct(c core.Construct) string {
	switch v := c.(type) {
	case *core.Stack:
		return "stack " + v.Identity() + " (" + v.Environment().String() + ")"
	case *core.Stage:
		return "stage " + v.StageName()
	case *core.App:
		return "app"
	default:
		return ""
	}
}
