package datastructure

// ComponentLabels maps each node to its connected-component id. Isolated
// nodes (present in the node table but with no adjacency) get -1.
type ComponentLabels struct {
	labels map[NodeID]int32
	// counts[c] is the number of nodes labelled c, for c > 0.
	counts map[int32]int
	main   int32
}

// LabelComponents runs iterative DFS over the undirected closure implied by
// g's adjacency (an edge u->v merges u and v into the same component
// regardless of direction) and assigns every node a positive component id,
// or -1 if it has no adjacency at all.
func LabelComponents(g *Graph) *ComponentLabels {
	undirected := make(map[NodeID][]NodeID)
	g.ForEachNode(func(n Node) {
		for _, e := range g.Neighbors(n.ID) {
			undirected[n.ID] = append(undirected[n.ID], e.To)
			undirected[e.To] = append(undirected[e.To], n.ID)
		}
	})

	labels := make(map[NodeID]int32)
	counts := make(map[int32]int)
	nextID := int32(1)

	g.ForEachNode(func(n Node) {
		if _, done := labels[n.ID]; done {
			return
		}
		if len(undirected[n.ID]) == 0 {
			labels[n.ID] = -1
			return
		}

		comp := nextID
		nextID++
		stack := []NodeID{n.ID}
		labels[n.ID] = comp
		size := 0
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			for _, nb := range undirected[cur] {
				if _, seen := labels[nb]; !seen {
					labels[nb] = comp
					stack = append(stack, nb)
				}
			}
		}
		counts[comp] = size
	})

	var main int32 = -1
	best := 0
	for comp, size := range counts {
		if size > best {
			best = size
			main = comp
		}
	}

	return &ComponentLabels{labels: labels, counts: counts, main: main}
}

func (c *ComponentLabels) Of(id NodeID) int32 {
	if lbl, ok := c.labels[id]; ok {
		return lbl
	}
	return -1
}

// Main returns the component id with the most labelled nodes, or -1 if the
// graph has no labelled components at all.
func (c *ComponentLabels) Main() int32 {
	return c.main
}

func (c *ComponentLabels) IsMain(id NodeID) bool {
	return c.main != -1 && c.Of(id) == c.main
}
