package scene

// Stub is an in-memory Scene that records node state. It backs the terminal
// front-end (which reads positions and sizes back out when drawing) and the
// engine tests.
type Stub struct {
	nodes []*StubNode
}

// NewStub returns an empty recording scene.
func NewStub() *Stub {
	return &Stub{}
}

// NewNode implements Scene.
func (s *Stub) NewNode(parent Node) Node {
	var p *StubNode
	if parent != nil {
		p, _ = parent.(*StubNode)
	}
	n := &StubNode{parent: p}
	if p != nil {
		p.children = append(p.children, n)
	}
	s.nodes = append(s.nodes, n)
	return n
}

// Live returns the number of nodes that have not been destroyed.
func (s *Stub) Live() int {
	count := 0
	for _, n := range s.nodes {
		if !n.destroyed {
			count++
		}
	}
	return count
}

// StubNode records the state pushed into it.
type StubNode struct {
	parent    *StubNode
	children  []*StubNode
	enabled   bool
	x, y      int
	w, h      int
	destroyed bool
}

func (n *StubNode) SetEnabled(enabled bool) { n.enabled = enabled }

func (n *StubNode) Enabled() bool { return n.enabled }

func (n *StubNode) SetPosition(x, y int) { n.x, n.y = x, y }

func (n *StubNode) Position() (int, int) { return n.x, n.y }

func (n *StubNode) Resize(width, height int) { n.w, n.h = width, height }

func (n *StubNode) Size() (int, int) { return n.w, n.h }

// Destroy releases the node and its whole subtree, the way a real scene
// graph reclaims children with their parent.
func (n *StubNode) Destroy() {
	n.destroyed = true
	for _, c := range n.children {
		c.Destroy()
	}
}

// Destroyed reports whether Destroy has been called on the node.
func (n *StubNode) Destroyed() bool { return n.destroyed }
