// Package pipeline provides the load → layout → render pipeline shared by the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode a TOML or JSON scene document into a [scene.Diagram]
//  2. Layout: resolve node boxes and edge connection points ([render.Compute])
//  3. Render: produce artifacts (SVG, DOT, Graphviz SVG, layout JSON)
//
// Layouts are cached by the hash of the loaded diagram and artifacts by the
// layout fingerprint, so re-rendering an unchanged scene is a cache lookup.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "billing.toml",
//	    Scene:   data,
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenegraph/pkg/cache"
	sio "github.com/matzehuels/scenegraph/pkg/io"
	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// LayoutVersion is part of every layout cache key. Bump it when the
// attachment algorithm changes.
const LayoutVersion = "1"

// Format constants for output formats.
const (
	FormatSVG      = "svg"      // native SVG drawn through node content
	FormatDOT      = "dot"      // Graphviz DOT with pinned positions
	FormatGraphviz = "graphviz" // SVG rendered by Graphviz from the DOT export
	FormatJSON     = "json"     // layout JSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatDOT:      true,
	FormatGraphviz: true,
	FormatJSON:     true,
}

// Extension returns the file extension for an output format.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return ".graphviz.svg"
	case FormatJSON:
		return ".layout.json"
	default:
		return "." + format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Source      string     `json:"source,omitempty"` // name used in logs and hooks
	Scene       []byte     `json:"-"`
	SceneFormat sio.Format `json:"scene_format,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Shadows    bool     `json:"shadows,omitempty"`
	ToolTips   bool     `json:"tooltips,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // DOT labels carry node kinds
	Unpinned   bool     `json:"unpinned,omitempty"` // let Graphviz place nodes

	// Refresh skips cache reads.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Diagram *scene.Diagram

	// SceneHash is the content hash of the loaded diagram.
	SceneHash string

	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, graphviz, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks the load inputs and applies defaults.
func (o *Options) ValidateForLoad() error {
	if len(o.Scene) == 0 {
		return fmt.Errorf("scene document is required")
	}
	if o.SceneFormat == "" {
		o.SceneFormat = sio.FormatTOML
	}
	if o.Source == "" {
		o.Source = "scene." + string(o.SceneFormat)
	}
	o.setLogger()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks the options of a full pipeline run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Version: LayoutVersion}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Shadows, k.ToolTips, k.EdgeLabels = o.Shadows, o.ToolTips, o.EdgeLabels
	case FormatDOT, FormatGraphviz:
		k.Unpinned, k.Detailed = o.Unpinned, o.Detailed
	}
	return k
}
