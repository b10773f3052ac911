package searcher

import "container/heap"

// Frontier holds generated but unexpanded nodes. Each implementation fixes
// its ordering discipline; nodes with equal priority leave in insertion order.
type Frontier interface {
	Push(n *Node)
	// Pop removes the next node, nil when empty
	Pop() *Node
	Len() int
	// Lookup returns the resident node for a state key, nil when absent
	Lookup(key string) *Node
}

// Priority orders a priority frontier, lowest first
type Priority func(*Node) float64

func byCost(n *Node) float64 {
	return n.G
}

func byHeuristic(n *Node) float64 {
	return n.H
}

func byEstimate(n *Node) float64 {
	return n.F()
}

// Explored holds the state keys already expanded by a graph search
type Explored map[string]struct{}

func (e Explored) Add(key string) {
	e[key] = struct{}{}
}

func (e Explored) Has(key string) bool {
	_, ok := e[key]
	return ok
}

type queue struct {
	nodes    []*Node
	resident map[string]*Node
}

// NewQueue returns a first-in first-out frontier
func NewQueue() Frontier {
	return &queue{resident: make(map[string]*Node)}
}

func (q *queue) Push(n *Node) {
	q.nodes = append(q.nodes, n)
	q.resident[n.ID] = n
}

func (q *queue) Pop() *Node {
	if len(q.nodes) == 0 {
		return nil
	}
	n := q.nodes[0]
	q.nodes[0] = nil
	q.nodes = q.nodes[1:]
	delete(q.resident, n.ID)
	return n
}

func (q *queue) Len() int {
	return len(q.nodes)
}

func (q *queue) Lookup(key string) *Node {
	return q.resident[key]
}

type stack struct {
	nodes    []*Node
	resident map[string]*Node
}

// NewStack returns a last-in first-out frontier
func NewStack() Frontier {
	return &stack{resident: make(map[string]*Node)}
}

func (s *stack) Push(n *Node) {
	s.nodes = append(s.nodes, n)
	s.resident[n.ID] = n
}

func (s *stack) Pop() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	last := len(s.nodes) - 1
	n := s.nodes[last]
	s.nodes[last] = nil
	s.nodes = s.nodes[:last]
	delete(s.resident, n.ID)
	return n
}

func (s *stack) Len() int {
	return len(s.nodes)
}

func (s *stack) Lookup(key string) *Node {
	return s.resident[key]
}

type entry struct {
	node     *Node
	priority float64
	seq      int
}

type entries []*entry

func (e entries) Len() int {
	return len(e)
}

func (e entries) Less(i, j int) bool {
	if e[i].priority != e[j].priority {
		return e[i].priority < e[j].priority
	}
	return e[i].seq < e[j].seq
}

func (e entries) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

func (e *entries) Push(x any) {
	*e = append(*e, x.(*entry))
}

func (e *entries) Pop() any {
	old := *e
	last := len(old) - 1
	item := old[last]
	old[last] = nil
	*e = old[:last]
	return item
}

type priorityFrontier struct {
	entries  entries
	priority Priority
	seq      int
	resident map[string]*entry
}

// NewPriorityFrontier returns a frontier popping the lowest priority first
func NewPriorityFrontier(priority Priority) Frontier {
	return &priorityFrontier{priority: priority, resident: make(map[string]*entry)}
}

func (p *priorityFrontier) Push(n *Node) {
	p.seq++
	e := &entry{node: n, priority: p.priority(n), seq: p.seq}
	heap.Push(&p.entries, e)
	p.resident[n.ID] = e
}

func (p *priorityFrontier) Pop() *Node {
	if len(p.entries) == 0 {
		return nil
	}
	e := heap.Pop(&p.entries).(*entry)
	delete(p.resident, e.node.ID)
	return e.node
}

func (p *priorityFrontier) Len() int {
	return len(p.entries)
}

func (p *priorityFrontier) Lookup(key string) *Node {
	if e, ok := p.resident[key]; ok {
		return e.node
	}
	return nil
}
