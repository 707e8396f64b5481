// Package render draws family tree scenes as PNG, PDF and SVG.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/infrastructure/logger"
)

// ErrUnsupportedFormat is returned for formats other than png, pdf and svg.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Font sizes in points.
const (
	nameSize   = 14
	detailSize = 11
	tagSize    = 9
)

// Options configures a Renderer.
type Options struct {
	// FontPath is a TrueType font used for all text. The Go fonts are
	// used when empty.
	FontPath string
	Log      *logger.Logger
}

// Renderer implements ports.Renderer.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
	log     *logger.Logger
}

// New creates a renderer, loading the configured font if any.
func New(opts Options) (*Renderer, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in font: %w", err)
	}

	if opts.FontPath != "" {
		custom, err := loadFont(opts.FontPath)
		if err != nil {
			return nil, err
		}
		regular, bold = custom, custom
	}

	return &Renderer{regular: regular, bold: bold, log: log}, nil
}

func loadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing TTF %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// faces holds the font faces of one render. Faces cache glyphs and must
// not be shared between concurrent renders.
type faces struct {
	name   font.Face
	detail font.Face
	tag    font.Face
}

func (r *Renderer) newFaces() faces {
	opts := func(size float64) *truetype.Options {
		return &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}
	}
	return faces{
		name:   truetype.NewFace(r.bold, opts(nameSize)),
		detail: truetype.NewFace(r.regular, opts(detailSize)),
		tag:    truetype.NewFace(r.regular, opts(tagSize)),
	}
}

// Render draws scene in format to w.
func (r *Renderer) Render(ctx context.Context, scene *ports.Scene, format ports.ImageFormat, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case ports.FormatPNG:
		dc := r.draw(scene)
		if err := dc.EncodePNG(&buf); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	case ports.FormatPDF:
		var raster bytes.Buffer
		dc := r.draw(scene)
		if err := dc.EncodePNG(&raster); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		width, height := canvasSize(scene)
		if err := writePDF(&buf, raster.Bytes(), float64(width), float64(height)); err != nil {
			return err
		}
	case ports.FormatSVG:
		writeSVG(&buf, scene)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	r.log.Debug("rendered scene", "format", format, "bytes", n, "members", len(scene.Members))
	return nil
}

// ParseFormat converts a format name such as "PNG" or ".svg".
func ParseFormat(s string) (ports.ImageFormat, error) {
	f := ports.ImageFormat(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case ports.FormatPNG, ports.FormatPDF, ports.FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: png, pdf, svg)", ErrUnsupportedFormat, s)
	}
}

// FormatForFile returns the image format implied by path's extension.
func FormatForFile(path string) (ports.ImageFormat, error) {
	return ParseFormat(filepath.Ext(path))
}

// canvasSize rounds the scene size up to whole pixels.
func canvasSize(scene *ports.Scene) (int, int) {
	w := int(math.Ceil(scene.Width))
	h := int(math.Ceil(scene.Height))
	if w < 1 {
		w = emptyWidth
	}
	if h < 1 {
		h = emptyHeight
	}
	return w, h
}
