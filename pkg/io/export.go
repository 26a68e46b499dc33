package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Write encodes d as a scene document in the given format.
// The output can be re-read with [Read]; node and diagram IDs survive the
// trip, document-local names do not.
func Write(d *scene.Diagram, w io.Writer, format Format) error {
	doc := toDocument(d)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return nil
}

// WriteJSON is Write with FormatJSON.
func WriteJSON(d *scene.Diagram, w io.Writer) error { return Write(d, w, FormatJSON) }

// WriteTOML is Write with FormatTOML.
func WriteTOML(d *scene.Diagram, w io.Writer) error { return Write(d, w, FormatTOML) }

// Export writes d to the file at path in the format implied by its
// extension.
func Export(d *scene.Diagram, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f, format)
}

func toDocument(d *scene.Diagram) document {
	all := d.AllNodes()
	doc := document{
		ID:       d.ID().String(),
		Revision: int64(d.Revision()),
		Nodes:    make([]node, len(all)),
	}

	names := make(map[scene.Node]string, len(all))
	for i, n := range all {
		name := fmt.Sprintf("n%d", i+1)
		names[n] = name
		loc := n.Location()
		nd := node{
			Name:     name,
			UUID:     n.ID().String(),
			Kind:     string(n.Kind()),
			Label:    n.Label(),
			ToolTip:  n.ToolTip(),
			X:        loc.X,
			Y:        loc.Y,
			Z:        int64(n.Z()),
			Revision: int64(n.Revision()),
		}
		if p := n.Parent(); p != nil {
			nd.Parent = names[p]
		}
		doc.Nodes[i] = nd
	}

	for _, e := range d.Edges() {
		ed := edge{From: names[e.Start()], To: names[e.End()]}
		if l, ok := e.(*scene.Line); ok {
			ed.Label = l.Label
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}
