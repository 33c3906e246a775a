// Package tree reconstructs a page's rooted component forest from the flat
// persisted component list and validates its integrity.
//
// Two policies cover the two call sites the model needs. Interactive
// mutations use Strict: a dangling parent reference or a cycle rejects the
// batch with no effect. Bulk paths (fork, import of untrusted data) use
// Lenient: offending components are re-parented to root, never dropped
// silently, and each sanitization is recorded as a note for the caller to log.
package tree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sitesmith/sitesmith/internal/model"
)

// Policy selects the failure behavior for malformed input.
type Policy int

const (
	// Strict rejects the whole batch on the first integrity violation.
	Strict Policy = iota
	// Lenient sanitizes violations in place and records what was changed.
	Lenient
)

var (
	// ErrDanglingParent marks a parent reference that resolves to no
	// component in the same page.
	ErrDanglingParent = errors.New("dangling parent reference")
	// ErrCycle marks a parent chain that loops back on itself.
	ErrCycle = errors.New("parent reference cycle")
	// ErrDuplicateID marks two components sharing an id.
	ErrDuplicateID = errors.New("duplicate component id")
)

// Note records one sanitization performed under the Lenient policy.
type Note struct {
	ComponentID string
	Reason      string
}

// Node is one component with its resolved, position-ordered children.
type Node struct {
	Component model.Component
	Children  []*Node
}

// Tree is a validated rooted forest over one page's components.
type Tree struct {
	roots []*Node
	byID  map[string]*Node
	notes []Note
}

// Build reconstructs and validates the forest for a flat component list.
// All components must belong to one page; sibling order is ascending
// Position, ties broken by input order (stable for a given snapshot).
func Build(components []model.Component, policy Policy) (*Tree, error) {
	byID := make(map[string]*Node, len(components))
	var notes []Note

	for _, c := range components {
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("component %s: %w", c.ID, ErrDuplicateID)
		}
		byID[c.ID] = &Node{Component: c}
	}

	// Resolve parents. Order of checks matters: dangling references are
	// handled before the cycle walk so the walk only sees resolvable chains.
	for _, c := range components {
		if c.IsRoot() {
			continue
		}
		if _, ok := byID[*c.ParentID]; !ok {
			if policy == Strict {
				return nil, fmt.Errorf("component %s references parent %s: %w", c.ID, *c.ParentID, ErrDanglingParent)
			}
			notes = append(notes, Note{ComponentID: c.ID, Reason: fmt.Sprintf("parent %s not found, re-parented to root", *c.ParentID)})
			node := byID[c.ID]
			node.Component.ParentID = nil
		}
	}

	// Cycle check: walk each node's ancestor chain with a visited set.
	// Parent-pointer data produced by the mutation API cannot cycle, but
	// forked or imported trees are untrusted.
	cycleMembers, err := findCycles(byID, policy)
	if err != nil {
		return nil, err
	}
	for _, id := range cycleMembers {
		notes = append(notes, Note{ComponentID: id, Reason: "parent chain forms a cycle, re-parented to root"})
		byID[id].Component.ParentID = nil
	}

	// Attach children, preserving input order for stable tie-breaks.
	var roots []*Node
	for _, c := range components {
		node := byID[c.ID]
		if node.Component.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent := byID[*node.Component.ParentID]
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots)
	for _, node := range byID {
		sortSiblings(node.Children)
	}

	return &Tree{roots: roots, byID: byID, notes: notes}, nil
}

// findCycles returns the ids of components whose parent chain loops. Under
// Strict the first cycle is an error instead.
func findCycles(byID map[string]*Node, policy Policy) ([]string, error) {
	const (
		unvisited  = 0
		inProgress = 1
		done       = 2
	)
	state := make(map[string]int, len(byID))
	var members []string

	// Iterate deterministically so Lenient sanitization is reproducible.
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if state[id] != unvisited {
			continue
		}
		// Walk the ancestor chain from id.
		var chain []string
		cur := id
		for {
			if state[cur] == done {
				break
			}
			if state[cur] == inProgress {
				// cur starts the loop; everything from cur onward in the
				// chain is a cycle member.
				if policy == Strict {
					return nil, fmt.Errorf("component %s: %w", cur, ErrCycle)
				}
				inCycle := false
				for _, cid := range chain {
					if cid == cur {
						inCycle = true
					}
					if inCycle {
						members = append(members, cid)
					}
				}
				break
			}
			state[cur] = inProgress
			chain = append(chain, cur)
			node := byID[cur]
			if node.Component.IsRoot() {
				break
			}
			next, ok := byID[*node.Component.ParentID]
			if !ok {
				break
			}
			cur = next.Component.ID
		}
		for _, cid := range chain {
			state[cid] = done
		}
	}
	return members, nil
}

func sortSiblings(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Component.Position < nodes[j].Component.Position
	})
}

// Roots returns the top-level nodes in position order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Notes returns the sanitizations performed during Build. Empty under Strict.
func (t *Tree) Notes() []Note {
	return t.notes
}

// ChildrenOf returns the components under the given parent id, sorted by
// ascending position. An empty id addresses the root level.
func (t *Tree) ChildrenOf(parentID string) []model.Component {
	var nodes []*Node
	if parentID == "" {
		nodes = t.roots
	} else {
		node, ok := t.byID[parentID]
		if !ok {
			return nil
		}
		nodes = node.Children
	}
	out := make([]model.Component, len(nodes))
	for i, n := range nodes {
		out[i] = n.Component
	}
	return out
}

// Lookup returns the node for a component id.
func (t *Tree) Lookup(id string) (*Node, bool) {
	node, ok := t.byID[id]
	return node, ok
}

// DescendantsOf returns every component id reachable below the given id,
// not including the id itself. Used for cascade deletes.
func (t *Tree) DescendantsOf(id string) []string {
	node, ok := t.byID[id]
	if !ok {
		return nil
	}
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			out = append(out, child.Component.ID)
			walk(child)
		}
	}
	walk(node)
	return out
}
