package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

func TestApplyRenderFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantFormats []string
		wantShadows bool
		wantLabels  bool
	}{
		{"config defaults", nil, []string{"svg", "json"}, true, false},
		{"format flag wins", []string{"-f", "DOT, json"}, []string{"dot", "json"}, true, false},
		{"explicit false wins", []string{"--shadows=false"}, []string{"svg", "json"}, false, false},
		{"explicit true", []string{"--labels"}, []string{"svg", "json"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, log.InfoLevel)
			c.config.Render = RenderConfig{Formats: []string{"svg", "json"}, Shadows: true}

			cmd := c.renderCommand()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error: %v", err)
			}
			opts := renderOpts{}
			opts.formats, _ = cmd.Flags().GetString("format")
			opts.shadows, _ = cmd.Flags().GetBool("shadows")
			opts.edgeLabels, _ = cmd.Flags().GetBool("labels")

			var popts pipeline.Options
			c.applyRenderFlags(cmd, &popts, opts)

			if !reflect.DeepEqual(popts.Formats, tt.wantFormats) {
				t.Errorf("Formats = %v, want %v", popts.Formats, tt.wantFormats)
			}
			if popts.Shadows != tt.wantShadows {
				t.Errorf("Shadows = %v, want %v", popts.Shadows, tt.wantShadows)
			}
			if popts.EdgeLabels != tt.wantLabels {
				t.Errorf("EdgeLabels = %v, want %v", popts.EdgeLabels, tt.wantLabels)
			}
		})
	}
}
