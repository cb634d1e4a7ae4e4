// Package ui renders discovered suites for human consumption.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

// Tree hierarchy symbols using box drawing characters
const (
	TreeBranch     = "├── " // Branch connector
	TreeLastBranch = "└── " // Last branch connector
	TreeContinue   = "│   " // Vertical line, parent has more siblings
	TreeIndent     = "    " // Parent was last, no vertical line needed
)

// RenderSuite renders a sorted suite as a tree: one node per module file,
// one leaf per case. Disabled cases carry their skip reason inline.
func RenderSuite(suite *unit.Suite) string {
	var sb strings.Builder

	cases := suite.Cases()
	n := suite.Len()
	sb.WriteString(fmt.Sprintf("Discovered %d case%s\n", n, pluralize(n)))

	// Cases arrive sorted by file, so module groups are contiguous.
	var groups [][]*unit.Case
	for _, c := range cases {
		if len(groups) == 0 || lastCase(groups).Location().File != c.Location().File {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], c)
	}

	for gi, group := range groups {
		lastGroup := gi == len(groups)-1
		sb.WriteString(connector(lastGroup))
		sb.WriteString(filepath.Base(group[0].Location().File))
		sb.WriteString("\n")

		indent := TreeContinue
		if lastGroup {
			indent = TreeIndent
		}
		for ci, c := range group {
			sb.WriteString(indent)
			sb.WriteString(connector(ci == len(group)-1))
			sb.WriteString(fmt.Sprintf("%s.%s (line %d)", c.ClassName(), c.MethodName(), c.Location().Line))
			if reason, ok := c.DisabledReason(); ok {
				sb.WriteString(fmt.Sprintf(" [disabled: %s]", reason))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func connector(isLast bool) string {
	if isLast {
		return TreeLastBranch
	}
	return TreeBranch
}

func lastCase(groups [][]*unit.Case) *unit.Case {
	group := groups[len(groups)-1]
	return group[len(group)-1]
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
