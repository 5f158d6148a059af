// Package kcolor reduces the palette of an image to k colors with k-means clustering.
package kcolor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/kcolor/internal/pixel"
	"github.com/yyyoichi/kcolor/kmeans"
)

var (
	ErrTooSmallImage = errors.New("image is too small to quantize")
)

// Quantize reduces src to k colors with the specified options.
// This is a convenience function that creates a Quantizer and calls its Quantize method.
func Quantize(ctx context.Context, src image.Image, k int, opts ...Option) (image.Image, error) {
	q, err := New(opts...)
	if err != nil {
		return nil, err
	}
	out, err := q.Quantize(ctx, src, k)
	if err != nil {
		return nil, err
	}
	return out.Image, nil
}

type Quantizer struct {
	cfg      kmeans.Config
	space    ColorSpace
	observer func(Progress)
}

// New initializes a quantizer. Without options pixels are clustered in RGB,
// seeded with random pixels and bounded by kmeans.DefaultMaxIterations.
func New(opts ...Option) (*Quantizer, error) {
	q := new(Quantizer)
	if err := q.init(opts...); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Quantizer) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return err
		}
	}
	return q.cfg.Validate()
}

// Quantize clusters the pixels of src into k colors.
//
// Process:
//  1. Flattens the pixels into points in row-major order (RGB or YUV).
//  2. Runs k-means over the points.
//  3. Paints every pixel with the color of its cluster, keeping alpha.
//
// Returns ErrTooSmallImage if src has fewer than 2 pixels.
func (q *Quantizer) Quantize(ctx context.Context, src image.Image, k int) (*Output, error) {
	img := pixel.New(src, pixel.Space(q.space))

	opts := q.cfg.Options()
	if q.observer != nil {
		observer := q.observer
		opts = append(opts, kmeans.WithObserver(func(ev kmeans.Event) {
			observer(Progress{Event: ev, img: img})
		}))
	}
	e, err := kmeans.New(img.Points(), opts...)
	if err != nil {
		if errors.Is(err, kmeans.ErrInvalidDataset) {
			return nil, fmt.Errorf("%w:%w", ErrTooSmallImage, err)
		}
		return nil, err
	}
	res, err := e.Run(ctx, k)
	if err != nil {
		return nil, err
	}
	centers := res.Centers()
	return &Output{
		Image:   img.Build(centers, res.Assignment),
		Palette: img.Palette(centers),
		Result:  res,
		img:     img,
	}, nil
}

// Output is a quantized image together with the clustering behind it.
type Output struct {
	Image image.Image
	// Palette[i] is the color of cluster i.
	Palette color.Palette
	Result  *kmeans.Result

	img *pixel.Image
}

// Paletted returns the quantized image indexed by cluster, as needed by GIF.
// Alpha is dropped. At most 256 colors are supported.
func (o *Output) Paletted() (*image.Paletted, error) {
	return o.img.Paletted(o.Result.Centers(), o.Result.Assignment)
}

// Progress is reported to the observer while a Quantize call runs.
type Progress struct {
	kmeans.Event
	img *pixel.Image
}

// Render paints the snapshot carried by the event, or returns nil if there is none.
func (p Progress) Render() image.Image {
	if p.Snapshot == nil {
		return nil
	}
	return p.img.Build(p.Snapshot.Centers, p.Snapshot.Assignment)
}
