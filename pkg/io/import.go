package io

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/geom"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Read decodes a scene document in the given format from r and builds the
// diagram it describes.
//
// Read returns an error if:
//   - The input cannot be decoded (INVALID_FORMAT)
//   - A node name is empty, duplicated or malformed (INVALID_INPUT)
//   - A parent or edge endpoint names an unknown node (INVALID_INPUT)
//   - The parent links form a cycle (INVALID_INPUT)
//   - A kind, uuid, z or revision value is invalid (INVALID_INPUT)
//
// Read does not close r.
func Read(r io.Reader, format Format) (*scene.Diagram, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return build(&doc)
}

// ReadJSON is Read with FormatJSON.
func ReadJSON(r io.Reader) (*scene.Diagram, error) { return Read(r, FormatJSON) }

// ReadTOML is Read with FormatTOML.
func ReadTOML(r io.Reader) (*scene.Diagram, error) { return Read(r, FormatTOML) }

// Import reads the scene file at path, choosing the format from the file
// extension.
func Import(path string) (*scene.Diagram, error) {
	if err := errors.ValidateScenePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func build(doc *document) (*scene.Diagram, error) {
	d := scene.NewDiagram()
	if doc.ID != "" {
		id, err := scene.ParseID(doc.ID)
		if err != nil {
			return nil, err
		}
		if err := d.SetID(id); err != nil {
			return nil, err
		}
	}

	nodes := make(map[string]scene.Node, len(doc.Nodes))
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return nil, fmt.Errorf("node #%d: %w", i+1, err)
		}
		if _, dup := nodes[n.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node name %q", n.Name)
		}
		sn, err := newNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Name, err)
		}
		nodes[n.Name] = sn
	}

	order, err := parentsFirst(doc.Nodes)
	if err != nil {
		return nil, err
	}
	for _, n := range order {
		sn := nodes[n.Name]
		at := geom.Pt(n.X, n.Y)
		if n.Parent == "" {
			err = d.AddNode(sn, at)
		} else {
			err = d.AddChild(nodes[n.Parent], sn, at)
		}
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Name, err)
		}
	}

	for _, e := range doc.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %s->%s: unknown node %q", e.From, e.To, e.From)
		}
		to, ok := nodes[e.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %s->%s: unknown node %q", e.From, e.To, e.To)
		}
		l := scene.NewLine(from, to)
		l.Label = e.Label
		if err := d.Connect(l); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	// Children first, so containers wrap finished children.
	all := d.AllNodes()
	for i := len(all) - 1; i >= 0; i-- {
		all[i].FinishDeserializing()
	}

	// Loading is not an edit: the diagram keeps the stored revision.
	rev, err := safecast.Conv[int](doc.Revision)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram revision")
	}
	if err := d.SetRevision(rev); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram revision")
	}
	return d, nil
}

func newNode(n *node) (scene.Node, error) {
	kind := scene.Kind(n.Kind)
	if kind == "" {
		kind = scene.KindBox
	}
	sn := scene.New(kind, n.Label)
	if sn == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", n.Kind)
	}
	if n.UUID != "" {
		id, err := scene.ParseID(n.UUID)
		if err != nil {
			return nil, err
		}
		if err := sn.SetID(id); err != nil {
			return nil, err
		}
	}
	z, err := safecast.Conv[int](n.Z)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "z")
	}
	sn.SetZ(z)
	rev, err := safecast.Conv[int](n.Revision)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "revision")
	}
	if err := sn.SetRevision(rev); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "revision")
	}
	sn.SetToolTip(n.ToolTip)
	return sn, nil
}

// parentsFirst orders nodes by containment depth, keeping document order
// within a level.
func parentsFirst(ns []node) ([]*node, error) {
	byName := make(map[string]*node, len(ns))
	for i := range ns {
		byName[ns[i].Name] = &ns[i]
	}

	depth := make(map[string]int, len(ns))
	var visit func(n *node, steps int) (int, error)
	visit = func(n *node, steps int) (int, error) {
		if d, ok := depth[n.Name]; ok {
			return d, nil
		}
		if n.Parent == "" {
			depth[n.Name] = 0
			return 0, nil
		}
		if steps > len(ns) {
			return 0, errors.New(errors.ErrCodeInvalidInput, "containment cycle through %q", n.Name)
		}
		p, ok := byName[n.Parent]
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidInput, "node %s: unknown parent %q", n.Name, n.Parent)
		}
		d, err := visit(p, steps+1)
		if err != nil {
			return 0, err
		}
		depth[n.Name] = d + 1
		return d + 1, nil
	}

	out := make([]*node, len(ns))
	for i := range ns {
		if _, err := visit(&ns[i], 0); err != nil {
			return nil, err
		}
		out[i] = &ns[i]
	}
	slices.SortStableFunc(out, func(a, b *node) int {
		return cmp.Compare(depth[a.Name], depth[b.Name])
	})
	return out, nil
}
