// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     treeviewer
// Description: Flattening of a syntax tree into collapsible display rows
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package treeviewer

import (
	"strings"

	"github.com/msto63/cminus/foundation/cminus/ast"
)

// row is one visible line of the tree
type row struct {
	node      ast.Node
	depth     int
	children  int
	collapsed bool
}

// flatten lists the visible nodes in print order. Children of a collapsed
// node are skipped.
func flatten(root ast.Node, collapsed map[ast.Node]bool) []row {
	if root == nil {
		return nil
	}

	var rows []row
	var walk func(n ast.Node, depth int)
	walk = func(n ast.Node, depth int) {
		kids := ast.Children(n)
		folded := collapsed[n] && len(kids) > 0
		rows = append(rows, row{node: n, depth: depth, children: len(kids), collapsed: folded})
		if folded {
			return
		}
		for _, k := range kids {
			walk(k, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

// collapseAll marks every inner node below the root as collapsed
func collapseAll(root ast.Node) map[ast.Node]bool {
	collapsed := make(map[ast.Node]bool)
	ast.Inspect(root, func(n ast.Node) bool {
		if n != root && len(ast.Children(n)) > 0 {
			collapsed[n] = true
		}
		return true
	})
	return collapsed
}

// plain renders a row without styles
func (r row) plain() string {
	return strings.Repeat("  ", r.depth) + r.marker() + r.node.String() + "  " + r.node.Pos().String()
}

func (r row) marker() string {
	switch {
	case r.children == 0:
		return MarkerLeaf
	case r.collapsed:
		return MarkerCollapsed
	default:
		return MarkerExpanded
	}
}

// render renders a row with styles
func (r row) render(selected bool) string {
	line := strings.Repeat("  ", r.depth) +
		MarkerStyle.Render(r.marker()) +
		NodeStyle(r.node).Render(r.node.String()) + "  " +
		PositionStyle.Render(r.node.Pos().String())
	if selected {
		return CursorStyle.Render(line)
	}
	return line
}
