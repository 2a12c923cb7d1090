package model

import (
	"sort"

	"github.com/ludo-technologies/ckscan/domain"
)

// Hierarchy is the inheritance graph of one model, kept as explicit adjacency
// sets (child name -> parent names) so cycle detection and multi-parent depth
// computation stay pure graph algorithms, independent of the entities.
//
// Only edges between modeled classes enter the graph. A declared base that
// resolves to no modeled class is an external parent: it cannot be followed,
// so it contributes no edge, and a class whose declared parents are all
// external counts as a root. A class declaring itself as a base forms the
// smallest inheritance cycle.
type Hierarchy struct {
	parents  map[string][]string
	children map[string][]string

	// depth memoization and cycle marks, filled eagerly by analyze()
	depths map[string]int
	cyclic map[string]bool

	roots []string
}

func newHierarchy(classes []*ClassEntity, known map[string]*ClassEntity) *Hierarchy {
	h := &Hierarchy{
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		depths:   make(map[string]int),
		cyclic:   make(map[string]bool),
	}

	for _, c := range classes {
		seen := make(map[string]bool)
		for _, base := range c.Bases {
			if _, ok := known[base]; !ok {
				continue
			}
			if seen[base] {
				continue
			}
			seen[base] = true
			h.parents[c.Name] = append(h.parents[c.Name], base)
			h.children[base] = append(h.children[base], c.Name)
		}
	}

	for _, c := range classes {
		if len(h.parents[c.Name]) == 0 {
			h.roots = append(h.roots, c.Name)
		}
		sort.Strings(h.children[c.Name])
	}
	sort.Strings(h.roots)

	h.analyze(classes)
	return h
}

// analyze walks every class's ancestry once, marking cycle membership and
// memoizing depths. DFS with a color map; never loops on cyclic input.
func (h *Hierarchy) analyze(classes []*ClassEntity) {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // done
	)
	color := make(map[string]int)

	var visit func(name string)
	visit = func(name string) {
		color[name] = gray
		depth := 0
		tainted := false
		for _, p := range h.parents[name] {
			switch color[p] {
			case gray:
				// back edge: every class on or above this path is cyclic
				tainted = true
				h.cyclic[p] = true
			case white:
				visit(p)
				fallthrough
			default:
				if h.cyclic[p] {
					tainted = true
				} else if d := h.depths[p] + 1; d > depth {
					depth = d
				}
			}
		}
		if tainted {
			h.cyclic[name] = true
		} else {
			h.depths[name] = depth
		}
		color[name] = black
	}

	for _, c := range classes {
		if color[c.Name] == white {
			visit(c.Name)
		}
	}

	// A gray-marked ancestor may have finished before the back edge was
	// observed; propagate cycle taint downward until stable.
	for changed := true; changed; {
		changed = false
		for child, ps := range h.parents {
			if h.cyclic[child] {
				continue
			}
			for _, p := range ps {
				if h.cyclic[p] {
					h.cyclic[child] = true
					changed = true
					break
				}
			}
		}
	}
}

// Roots returns the cached root class set in lexicographic order
func (h *Hierarchy) Roots() []string {
	return h.roots
}

// ParentsOf returns the direct modeled superclasses in declaration order
func (h *Hierarchy) ParentsOf(name string) []string {
	return h.parents[name]
}

// ChildrenOf returns the direct modeled subclasses in lexicographic order
func (h *Hierarchy) ChildrenOf(name string) []string {
	return h.children[name]
}

// InCycle reports whether the class's ancestry (including itself) contains an
// inheritance cycle
func (h *Hierarchy) InCycle(name string) bool {
	return h.cyclic[name]
}

// DepthOf returns the longest root path length for a class: 0 for roots, the
// maximum over all ancestor paths with multiple inheritance. Classes whose
// ancestry contains a cycle fail with a cycle error instead of a value.
func (h *Hierarchy) DepthOf(name string) (int, error) {
	if h.cyclic[name] {
		return 0, domain.NewCycleError(name)
	}
	d, ok := h.depths[name]
	if !ok {
		return 0, domain.NewNotFoundError(name)
	}
	return d, nil
}
