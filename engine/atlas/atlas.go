// Package atlas packs source texture images into fixed-size pages using a
// skyline bottom-left placement strategy, exposing each packed texture's
// final page index and UV rectangle (half-pixel inset to avoid bilinear
// bleed across neighboring packed regions).
//
// Pages are raw float32 RGBA buffers rather than image.NRGBA: a reflectance
// texture's packed pixels are spectral upsampling coefficients and a
// radiance texture's are an unbounded intensity, neither of which survives
// an 8-bit-per-channel color.Color round trip.
package atlas

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
)

// PixelFormat selects the per-texture-type pixel transform applied while
// blitting a source image onto an atlas page.
type PixelFormat int

const (
	// Raw textures (e.g. normal maps, masks, or data already transformed by
	// the caller) are copied without further decoding.
	Raw PixelFormat = iota
	// ReflectanceWithAlpha textures (albedo/base color) are sRGB-decoded to
	// linear on the RGB channels; alpha passes through unchanged.
	ReflectanceWithAlpha
	// Radiance textures (emission, environment maps) are split into color
	// and intensity: intensity = 2*max(r,g,b) goes to alpha and RGB is
	// divided by it; pixels with intensity <= 1e-6 become all zero.
	Radiance
)

// Source is a texture image offered up for packing: row-major RGBA,
// four float32 per pixel.
type Source struct {
	Width, Height int
	Pixels        []float32
	Format        PixelFormat
	// Nearest requests nearest-neighbor sampling at render time rather than
	// bilinear; carried through as a flag, not applied here.
	Nearest bool
}

// Region describes where a packed texture landed: its page, its pixel
// rectangle within that page, and the half-pixel-inset UV rectangle a
// shader should sample with.
type Region struct {
	PageIndex      int
	PixelX, PixelY int
	PixelW, PixelH int
	U0, V0, U1, V1 float32
	Nearest        bool
}

// Page is one fixed-size packed texture page: row-major RGBA float32.
type Page struct {
	Size    int
	Pixels  []float32
	skyline []skylineSegment
}

func newPage(size int) *Page {
	return &Page{
		Size:    size,
		Pixels:  make([]float32, size*size*4),
		skyline: []skylineSegment{{x: 0, y: 0, width: size}},
	}
}

// At returns page's pixel at (x, y) as an (r,g,b,a) tuple.
func (p *Page) At(x, y int) (r, g, b, a float32) {
	i := (y*p.Size + x) * 4
	return p.Pixels[i], p.Pixels[i+1], p.Pixels[i+2], p.Pixels[i+3]
}

// Atlas owns a growing list of fixed-size pages.
type Atlas struct {
	PageSize int
	Pages    []*Page
}

// New creates an empty atlas with the given square page dimension.
func New(pageSize int) *Atlas {
	return &Atlas{PageSize: pageSize}
}

// Pack places src into the first page with room, allocating a new page if
// none fits. Returns ErrOversizedTexture if src exceeds the page dimension
// on either axis.
func (a *Atlas) Pack(src Source) (Region, error) {
	if src.Width > a.PageSize || src.Height > a.PageSize {
		return Region{}, fmt.Errorf("texture %dx%d exceeds atlas page size %d: %w",
			src.Width, src.Height, a.PageSize, core.ErrOversizedTexture)
	}

	for pageIndex, page := range a.Pages {
		if x, y, ok := page.findPosition(src.Width, src.Height); ok {
			return a.place(page, pageIndex, x, y, src), nil
		}
	}

	page := newPage(a.PageSize)
	a.Pages = append(a.Pages, page)
	x, y, ok := page.findPosition(src.Width, src.Height)
	if !ok {
		// Only unreachable if src fits the page (checked above) but the
		// freshly-allocated page's single skyline segment somehow rejects it.
		return Region{}, fmt.Errorf("failed to place %dx%d texture on a fresh page: %w",
			src.Width, src.Height, core.ErrOversizedTexture)
	}
	return a.place(page, len(a.Pages)-1, x, y, src), nil
}

func (a *Atlas) place(page *Page, pageIndex, x, y int, src Source) Region {
	blit(page, x, y, src)
	page.addSkylineLevel(x, y, src.Width, src.Height)

	size := float32(a.PageSize)
	return Region{
		PageIndex: pageIndex,
		PixelX:    x,
		PixelY:    y,
		PixelW:    src.Width,
		PixelH:    src.Height,
		U0:        (float32(x) + 0.5) / size,
		V0:        (float32(y) + 0.5) / size,
		U1:        (float32(x+src.Width) - 0.5) / size,
		V1:        (float32(y+src.Height) - 0.5) / size,
		Nearest:   src.Nearest,
	}
}

func blit(page *Page, x, y int, src Source) {
	for sy := 0; sy < src.Height; sy++ {
		for sx := 0; sx < src.Width; sx++ {
			r, g, b, a := transformPixel(src, sx, sy)
			di := ((y+sy)*page.Size + (x + sx)) * 4
			page.Pixels[di], page.Pixels[di+1], page.Pixels[di+2], page.Pixels[di+3] = r, g, b, a
		}
	}
}
