package pixel

import (
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/kcolor/internal/yuv"
	"github.com/yyyoichi/kcolor/kmeans"
)

// Space is the coordinate space pixels are clustered in.
type Space int

const (
	RGB Space = iota
	YUV
)

// Image is a source image flattened into one point per pixel in row-major order.
type Image struct {
	bounds        image.Rectangle
	width, height int
	area          int
	space         Space

	alpha  []uint16
	points []kmeans.Point
}

func New(src image.Image, space Space) *Image {
	var m Image
	m.bounds = src.Bounds()
	m.width, m.height = m.bounds.Dx(), m.bounds.Dy()
	m.area = m.width * m.height
	m.space = space
	m.alpha = make([]uint16, m.area)
	m.points = make([]kmeans.Point, m.area)

	// one row of packed channel triples, converted in a single batch
	rgb := make([]uint8, 3*m.width)
	coords := make([]int, 3*m.width)
	idx := 0
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for i := range m.width {
			c := color.NRGBA64Model.Convert(src.At(m.bounds.Min.X+i, y)).(color.NRGBA64)
			m.alpha[idx+i] = c.A
			rgb[3*i], rgb[3*i+1], rgb[3*i+2] = uint8(c.R>>8), uint8(c.G>>8), uint8(c.B>>8)
		}
		m.convert(rgb, coords)
		for i := range m.width {
			m.points[idx+i] = kmeans.MustPoint(coords[3*i : 3*i+3]...)
		}
		idx += m.width
	}
	return &m
}

func (m *Image) convert(rgb []uint8, dst []int) {
	if m.space == YUV {
		yuv.FromRGBBatch(rgb, dst)
		return
	}
	for i, v := range rgb {
		dst[i] = int(v)
	}
}

// Points returns the pixels as points. The slice is shared; points are immutable.
func (m *Image) Points() []kmeans.Point { return m.points }

// Bounds returns the bounds of the source image.
func (m *Image) Bounds() image.Rectangle { return m.bounds }

// Color converts a cluster center back to an opaque 8-bit color.
func (m *Image) Color(p kmeans.Point) color.RGBA {
	if m.space == YUV {
		r, g, b := yuv.ToRGB(p.At(0), p.At(1), p.At(2))
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return color.RGBA{R: clip8(p.At(0)), G: clip8(p.At(1)), B: clip8(p.At(2)), A: 0xff}
}

// Palette converts every center with Color.
func (m *Image) Palette(centers []kmeans.Point) color.Palette {
	p := make(color.Palette, len(centers))
	for i, c := range centers {
		p[i] = m.Color(c)
	}
	return p
}

// Build paints every pixel with the color of its assigned center.
// The source alpha is kept.
func (m *Image) Build(centers []kmeans.Point, assignment []int) image.Image {
	palette := make([]color.RGBA, len(centers))
	for i, c := range centers {
		palette[i] = m.Color(c)
	}
	dist := image.NewNRGBA64(m.bounds)
	idx := 0
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			c := palette[assignment[idx]]
			dist.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(c.R) * 0x101,
				G: uint16(c.G) * 0x101,
				B: uint16(c.B) * 0x101,
				A: m.alpha[idx],
			})
			idx++
		}
	}
	return dist
}

// Paletted is like Build but returns an image indexed by cluster.
// Alpha is dropped; every palette entry is opaque.
func (m *Image) Paletted(centers []kmeans.Point, assignment []int) (*image.Paletted, error) {
	if len(centers) > 256 {
		return nil, fmt.Errorf("paletted image holds at most 256 colors, got %d", len(centers))
	}
	dist := image.NewPaletted(m.bounds, m.Palette(centers))
	idx := 0
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			dist.SetColorIndex(x, y, uint8(assignment[idx]))
			idx++
		}
	}
	return dist, nil
}

func clip8(c int) uint8 {
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}
