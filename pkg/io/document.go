package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/scenegraph/pkg/errors"
)

// Format names a document encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the encoding implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (want .json or .toml)", filepath.Ext(path))
	}
}

type document struct {
	ID       string `json:"id,omitempty" toml:"id,omitempty"`
	Revision int64  `json:"revision,omitempty" toml:"revision,omitempty"`
	Nodes    []node `json:"nodes" toml:"nodes"`
	Edges    []edge `json:"edges,omitempty" toml:"edges,omitempty"`
}

type node struct {
	Name     string  `json:"name" toml:"name"`
	UUID     string  `json:"uuid,omitempty" toml:"uuid,omitempty"`
	Kind     string  `json:"kind,omitempty" toml:"kind,omitempty"`
	Label    string  `json:"label,omitempty" toml:"label,omitempty"`
	ToolTip  string  `json:"tooltip,omitempty" toml:"tooltip,omitempty"`
	Parent   string  `json:"parent,omitempty" toml:"parent,omitempty"`
	X        float64 `json:"x" toml:"x"`
	Y        float64 `json:"y" toml:"y"`
	Z        int64   `json:"z,omitempty" toml:"z,omitempty"`
	Revision int64   `json:"revision,omitempty" toml:"revision,omitempty"`
}

type edge struct {
	From  string `json:"from" toml:"from"`
	To    string `json:"to" toml:"to"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`
}
