package svgnorm

import (
	"fmt"

	"golang.org/x/net/html"
)

// fallbackGroupKey is used when a class-diagram node ancestor carries no
// stable identifier.
const fallbackGroupKey = "class_unknown"

// nodeGroup is an ordered batch of foreignObject nodes that belong to
// the same diagram node. Member order is document order and determines
// the vertical stacking of the text lines synthesized from the group.
type nodeGroup struct {
	key     string
	members []*html.Node
}

// groupForeignObjects partitions foreignObject nodes into conversion
// groups, preserving the document order of first occurrence.
//
// In class diagrams one node box legitimately holds multiple stacked
// text lines (class name, attributes, methods), so members sharing a
// group ancestor are batched under that ancestor's data-id. Every other
// diagram family keeps one-text-per-node semantics: each foreignObject
// becomes its own singleton group under a synthesized key.
func groupForeignObjects(foreignObjects []*html.Node, classDiagram bool) []nodeGroup {
	var groups []nodeGroup
	index := make(map[string]int)

	for _, fo := range foreignObjects {
		if classDiagram {
			if ancestor := findGroupAncestor(fo); ancestor != nil {
				key := attr(ancestor, "data-id")
				if key == "" {
					key = fallbackGroupKey
				}
				if i, ok := index[key]; ok {
					groups[i].members = append(groups[i].members, fo)
					continue
				}
				index[key] = len(groups)
				groups = append(groups, nodeGroup{key: key, members: []*html.Node{fo}})
				continue
			}
		}
		key := fmt.Sprintf("individual_%d", len(groups))
		groups = append(groups, nodeGroup{key: key, members: []*html.Node{fo}})
	}

	return groups
}
