// Package render converts Graphviz dot text into image formats.
//
// Rendering happens in-process via [github.com/goccy/go-graphviz]; no
// external graphviz installation is required.
package render

import (
	"bytes"
	"context"
	"time"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/observability"
)

// Format identifies an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	JPG Format = "jpg"
	DOT Format = "dot"
)

// Formats lists all supported output formats.
var Formats = []Format{SVG, PNG, JPG, DOT}

// ParseFormat validates a format name. The comparison is case-sensitive;
// format names are lowercase.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format %q (supported: svg, png, jpg, dot)", name)
}

// Render converts dot text into the given format.
//
// The DOT format is a passthrough and returns the input unchanged. Other
// formats run the graphviz layout engine. Empty dot input yields an error
// with code INVALID_FORMAT.
func Render(ctx context.Context, dot string, format Format) (out []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(format))
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	}()

	if dot == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "empty dot input")
	}
	if format == DOT {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse dot")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphvizFormat(format), &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

func graphvizFormat(f Format) graphviz.Format {
	switch f {
	case PNG:
		return graphviz.PNG
	case JPG:
		return graphviz.JPG
	default:
		return graphviz.SVG
	}
}
