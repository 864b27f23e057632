package field

import (
	"sort"

	"github.com/pkg/errors"
)

// Node is a point of a nodeset.
type Node struct {
	id      int
	nodeset *Nodeset
}

// ID returns the node identifier.
func (n *Node) ID() int {
	return n.id
}

// Nodeset returns the nodeset owning the node.
func (n *Node) Nodeset() *Nodeset {
	return n.nodeset
}

// Nodeset holds nodes sorted by identifier.
type Nodeset struct {
	domain DomainType
	module *Module
	nodes  []*Node
	byID   map[int]*Node
}

func newNodeset(m *Module, d DomainType) *Nodeset {
	return &Nodeset{
		domain: d,
		module: m,
		byID:   make(map[int]*Node),
	}
}

// DomainType returns which nodeset this is.
func (s *Nodeset) DomainType() DomainType {
	return s.domain
}

// Module returns the owning module.
func (s *Nodeset) Module() *Module {
	return s.module
}

// Size returns the number of nodes.
func (s *Nodeset) Size() int {
	return len(s.nodes)
}

// CreateNode adds a node. Identifiers must be positive and unique.
func (s *Nodeset) CreateNode(id int) (*Node, error) {
	if id < 1 {
		return nil, errors.Errorf("invalid %s identifier %d", s.domain, id)
	}
	if _, ok := s.byID[id]; ok {
		return nil, errors.Wrapf(ErrNodeExists, "%s %d", s.domain, id)
	}
	n := &Node{id: id, nodeset: s}
	i := sort.Search(len(s.nodes), func(i int) bool { return s.nodes[i].id > id })
	s.nodes = append(s.nodes, nil)
	copy(s.nodes[i+1:], s.nodes[i:])
	s.nodes[i] = n
	s.byID[id] = n
	return n, nil
}

// FindNodeByIdentifier returns the node or nil.
func (s *Nodeset) FindNodeByIdentifier(id int) *Node {
	return s.byID[id]
}

// NodeIterator iterates over a snapshot of the nodes in identifier order.
func (s *Nodeset) NodeIterator() NodeIterator {
	return &nodeIterator{nodes: append([]*Node{}, s.nodes...)}
}

// NodeIterator walks a nodeset once.
type NodeIterator interface {
	Incr()
	IsValid() bool
	Node() *Node
}

type nodeIterator struct {
	nodes []*Node
	pos   int
}

func (i *nodeIterator) Incr() {
	i.pos++
}

func (i *nodeIterator) IsValid() bool {
	return i.pos < len(i.nodes)
}

func (i *nodeIterator) Node() *Node {
	return i.nodes[i.pos]
}
