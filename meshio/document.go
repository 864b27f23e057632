// Package meshio reads and writes scaffold meshes and measured data.
package meshio

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/scaffoldmapper/field"
)

// ErrFormat is returned for documents which are syntactically valid but
// describe an inconsistent mesh.
var ErrFormat = errors.New("invalid scaffold document")

// Document is the YAML form of a field module.
type Document struct {
	Fields     []FieldDoc   `yaml:"fields"`
	Nodes      []NodeDoc    `yaml:"nodes,omitempty"`
	Elements   []ElementDoc `yaml:"elements,omitempty"`
	Groups     []GroupDoc   `yaml:"groups,omitempty"`
	DataPoints []NodeDoc    `yaml:"datapoints,omitempty"`
}

// FieldDoc declares a finite element field.
type FieldDoc struct {
	Name             string `yaml:"name"`
	Components       int    `yaml:"components"`
	Coordinate       bool   `yaml:"coordinate,omitempty"`
	CoordinateSystem string `yaml:"coordinate_system,omitempty"`
}

// NodeDoc holds the parameters of one node, keyed by field name then value
// label name. Each label carries one vector per version.
type NodeDoc struct {
	ID     int                               `yaml:"id"`
	Fields map[string]map[string][][]float64 `yaml:"fields,omitempty"`
}

type ElementDoc struct {
	ID        int   `yaml:"id"`
	Dimension int   `yaml:"dimension"`
	Nodes     []int `yaml:"nodes,flow"`
}

// GroupDoc lists the elements, of one mesh dimension, in a group.
type GroupDoc struct {
	Name      string `yaml:"name"`
	Dimension int    `yaml:"dimension"`
	Elements  []int  `yaml:"elements,omitempty,flow"`
}

// Decode parses a YAML document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrFormat, "empty document")
		}
		return nil, errors.Wrap(err, "decoding scaffold document")
	}
	return &doc, nil
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding scaffold document")
	}
	return enc.Close()
}

// ReadScaffold loads a scaffold document from path into a new module.
func ReadScaffold(path string) (*field.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening scaffold")
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	fm, err := doc.Module()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return fm, nil
}

// WriteScaffold saves the finite element fields, meshes and groups of fm to
// path.
func WriteScaffold(path string, fm *field.Module) error {
	doc, err := NewDocument(fm)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating scaffold")
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing scaffold")
}

// Module builds a field module from the document. All changes are made in a
// single change batch.
func (d *Document) Module() (*field.Module, error) {
	fm := field.NewModule()
	fm.BeginChange()
	defer fm.EndChange()

	for _, fd := range d.Fields {
		f, err := fm.CreateFieldFiniteElement(fd.Name, fd.Components)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "field %q: %v", fd.Name, err)
		}
		cs, err := field.ParseCoordinateSystemType(fd.CoordinateSystem)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "field %q: %v", fd.Name, err)
		}
		f.SetCoordinateSystemType(cs)
		f.SetTypeCoordinate(fd.Coordinate)
	}
	if err := defineNodes(fm, field.DomainNodes, d.Nodes); err != nil {
		return nil, err
	}
	if err := defineNodes(fm, field.DomainDataPoints, d.DataPoints); err != nil {
		return nil, err
	}

	nodes := fm.FindNodesetByDomainType(field.DomainNodes)
	for _, ed := range d.Elements {
		mesh := fm.FindMeshByDimension(ed.Dimension)
		if mesh == nil {
			return nil, errors.Wrapf(ErrFormat, "element %d: dimension %d", ed.ID, ed.Dimension)
		}
		en := make([]*field.Node, len(ed.Nodes))
		for i, id := range ed.Nodes {
			if en[i] = nodes.FindNodeByIdentifier(id); en[i] == nil {
				return nil, errors.Wrapf(ErrFormat, "element %d: unknown node %d", ed.ID, id)
			}
		}
		if _, err := mesh.CreateElement(ed.ID, en); err != nil {
			return nil, errors.Wrapf(ErrFormat, "element %d: %v", ed.ID, err)
		}
	}

	for _, gd := range d.Groups {
		g, err := fm.CreateFieldGroup(gd.Name)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "group %q: %v", gd.Name, err)
		}
		if len(gd.Elements) == 0 {
			continue
		}
		mesh := fm.FindMeshByDimension(gd.Dimension)
		if mesh == nil {
			return nil, errors.Wrapf(ErrFormat, "group %q: dimension %d", gd.Name, gd.Dimension)
		}
		for _, id := range gd.Elements {
			e := mesh.FindElementByIdentifier(id)
			if e == nil {
				return nil, errors.Wrapf(ErrFormat, "group %q: unknown element %d", gd.Name, id)
			}
			g.AddElement(e)
		}
	}
	return fm, nil
}

func defineNodes(fm *field.Module, domain field.DomainType, docs []NodeDoc) error {
	nodeset := fm.FindNodesetByDomainType(domain)
	for _, nd := range docs {
		n, err := nodeset.CreateNode(nd.ID)
		if err != nil {
			return errors.Wrapf(ErrFormat, "%s %d: %v", domain, nd.ID, err)
		}
		for _, name := range sortedKeys(nd.Fields) {
			f, ok := fm.FindFieldByName(name).(*field.FiniteElement)
			if !ok {
				return errors.Wrapf(ErrFormat, "%s %d: unknown field %q", domain, nd.ID, name)
			}
			params := make(map[field.ValueLabel][][]float64, len(nd.Fields[name]))
			versions := make(map[field.ValueLabel]int, len(nd.Fields[name]))
			for ln, vv := range nd.Fields[name] {
				l, err := field.ParseValueLabel(ln)
				if err != nil {
					return errors.Wrapf(ErrFormat, "%s %d field %q: %v", domain, nd.ID, name, err)
				}
				params[l] = vv
				versions[l] = len(vv)
			}
			if err := f.DefineAtNode(n, versions); err != nil {
				return errors.Wrapf(ErrFormat, "%s %d field %q: %v", domain, nd.ID, name, err)
			}
			for l, vv := range params {
				for i, p := range vv {
					if err := f.SetNodeParameters(n, l, i+1, p); err != nil {
						return errors.Wrapf(ErrFormat, "%s %d field %q %s: %v", domain, nd.ID, name, l, err)
					}
				}
			}
		}
	}
	return nil
}

// NewDocument captures the current state of fm.
func NewDocument(fm *field.Module) (*Document, error) {
	doc := &Document{}
	var fes []*field.FiniteElement
	for _, f := range fm.Fields() {
		switch f := f.(type) {
		case *field.FiniteElement:
			fes = append(fes, f)
			doc.Fields = append(doc.Fields, FieldDoc{
				Name:             f.Name(),
				Components:       f.NumberOfComponents(),
				Coordinate:       f.IsTypeCoordinate(),
				CoordinateSystem: f.CoordinateSystemType().String(),
			})
		case *field.Group:
			gd := GroupDoc{Name: f.Name()}
			for _, e := range f.Elements() {
				// Groups are stored per dimension; the highest wins.
				if d := e.Mesh().Dimension(); d > gd.Dimension {
					gd.Dimension = d
					gd.Elements = gd.Elements[:0]
				}
				if e.Mesh().Dimension() == gd.Dimension {
					gd.Elements = append(gd.Elements, e.ID())
				}
			}
			doc.Groups = append(doc.Groups, gd)
		}
	}

	var err error
	if doc.Nodes, err = nodeDocs(fm.FindNodesetByDomainType(field.DomainNodes), fes); err != nil {
		return nil, err
	}
	if doc.DataPoints, err = nodeDocs(fm.FindNodesetByDomainType(field.DomainDataPoints), fes); err != nil {
		return nil, err
	}
	for dim := 1; dim <= 3; dim++ {
		for _, e := range fm.FindMeshByDimension(dim).Elements() {
			ed := ElementDoc{ID: e.ID(), Dimension: dim}
			for _, n := range e.Nodes() {
				ed.Nodes = append(ed.Nodes, n.ID())
			}
			doc.Elements = append(doc.Elements, ed)
		}
	}
	return doc, nil
}

func nodeDocs(s *field.Nodeset, fes []*field.FiniteElement) ([]NodeDoc, error) {
	var out []NodeDoc
	for it := s.NodeIterator(); it.IsValid(); it.Incr() {
		n := it.Node()
		nd := NodeDoc{ID: n.ID()}
		for _, f := range fes {
			if !f.IsDefinedAtNode(n) {
				continue
			}
			labels := make(map[string][][]float64)
			for _, l := range field.ValueLabels {
				count := f.NumberOfVersions(n, l)
				for v := 1; v <= count; v++ {
					p, err := f.NodeParameters(n, l, v, f.NumberOfComponents())
					if err != nil {
						return nil, errors.Wrapf(err, "node %d", n.ID())
					}
					labels[l.String()] = append(labels[l.String()], p)
				}
			}
			if nd.Fields == nil {
				nd.Fields = make(map[string]map[string][][]float64)
			}
			nd.Fields[f.Name()] = labels
		}
		out = append(out, nd)
	}
	return out, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
