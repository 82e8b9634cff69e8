// Package rowtree folds the flat, repeated rows coming out of a wide
// relational join back into deduplicated nested object graphs.
package rowtree

import (
	"sort"
	"strings"
)

// Row is one flat result row. Keys are attribute paths: a root attribute
// ("id", "number"), a child attribute ("line.name") or a grandchild attribute
// ("trainRuns.policePeople.id").
type Row map[string]any

// Assemble folds rows into root objects keyed by their "id" attribute, in
// first-seen order. nestingKeys lists the dotted relation paths that hold
// one-to-many children ("trainRuns", "trainRuns.policePeople"); each becomes
// an array, present even when empty, and a child identity is appended at most
// once per parent however often the join repeats it. The fold is pure:
// feeding duplicate rows changes nothing.
func Assemble(rows []Row, nestingKeys []string) []map[string]any {
	spec := buildSpec(nestingKeys)

	index := make(map[any]map[string]any, len(rows))
	roots := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		nested := nest(row)
		id, ok := nested["id"]
		if !ok || id == nil {
			continue
		}
		if existing, seen := index[id]; seen {
			mergeChildren(existing, nested, spec)
			continue
		}
		wrapRelations(nested, spec)
		index[id] = nested
		roots = append(roots, nested)
	}

	return roots
}

// relationSpec is the tree form of the nesting key list: one node per
// relation, children keyed by the next path segment.
type relationSpec struct {
	names    []string
	children map[string]*relationSpec
}

func newRelationSpec() *relationSpec {
	return &relationSpec{children: make(map[string]*relationSpec)}
}

func (s *relationSpec) child(name string) *relationSpec {
	c, ok := s.children[name]
	if !ok {
		c = newRelationSpec()
		s.children[name] = c
		s.names = append(s.names, name)
	}
	return c
}

func buildSpec(nestingKeys []string) *relationSpec {
	// shallow paths first so a parent relation exists before its children
	keys := make([]string, len(nestingKeys))
	copy(keys, nestingKeys)
	sort.SliceStable(keys, func(i, j int) bool {
		return strings.Count(keys[i], ".") < strings.Count(keys[j], ".")
	})

	root := newRelationSpec()
	for _, key := range keys {
		node := root
		for _, segment := range strings.Split(key, ".") {
			node = node.child(segment)
		}
	}
	return root
}

// nest splits dotted paths into nested maps, the explicit equivalent of the
// raw-row "nest" option of the source store.
func nest(row Row) map[string]any {
	out := make(map[string]any, len(row))
	for path, value := range row {
		segments := strings.Split(path, ".")
		node := out
		for _, segment := range segments[:len(segments)-1] {
			next, ok := node[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[segment] = next
			}
			node = next
		}
		node[segments[len(segments)-1]] = value
	}
	return out
}

// wrapRelations turns every declared relation of obj into an array: a child
// object with an identity becomes a one-element array, anything else an empty
// one. Applied recursively to the new elements.
func wrapRelations(obj map[string]any, spec *relationSpec) {
	for _, name := range spec.names {
		childSpec := spec.children[name]
		switch child := obj[name].(type) {
		case []any:
			for _, elem := range child {
				if m, ok := elem.(map[string]any); ok {
					wrapRelations(m, childSpec)
				}
			}
		case map[string]any:
			if identityOf(child) == nil {
				obj[name] = []any{}
				continue
			}
			wrapRelations(child, childSpec)
			obj[name] = []any{child}
		default:
			obj[name] = []any{}
		}
	}
}

// mergeChildren folds one more row into an already-seen parent. Scalar
// attributes of the parent stay as first materialized; only relation arrays
// grow, and only for identities not collected yet. A repeated child with a
// fresh grandchild recurses instead of appending.
func mergeChildren(existing, incoming map[string]any, spec *relationSpec) {
	for _, name := range spec.names {
		childSpec := spec.children[name]
		child, ok := incoming[name].(map[string]any)
		if !ok {
			continue
		}
		id := identityOf(child)
		if id == nil {
			continue
		}

		arr, _ := existing[name].([]any)
		if match := findByIdentity(arr, id); match != nil {
			mergeChildren(match, child, childSpec)
			continue
		}
		wrapRelations(child, childSpec)
		existing[name] = append(arr, child)
	}
}

func findByIdentity(arr []any, id any) map[string]any {
	for _, elem := range arr {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if identityOf(m) == id {
			return m
		}
	}
	return nil
}

func identityOf(obj map[string]any) any {
	return obj["id"]
}
