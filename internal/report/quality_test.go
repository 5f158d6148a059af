package report

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPSNR(t *testing.T) {
	a := stripes()

	t.Run("identical", func(t *testing.T) {
		psnr, err := PSNR(a, a)
		require.NoError(t, err)
		assert.True(t, math.IsInf(psnr, 1))
	})

	t.Run("offset bounds", func(t *testing.T) {
		b := image.NewRGBA(image.Rect(10, 10, 16, 12))
		for y := range 2 {
			for x := range 6 {
				b.Set(10+x, 10+y, a.At(x, y))
			}
		}
		psnr, err := PSNR(a, b)
		require.NoError(t, err)
		assert.True(t, math.IsInf(psnr, 1))
	})

	t.Run("uniform error", func(t *testing.T) {
		black := image.NewRGBA(image.Rect(0, 0, 2, 2))
		gray := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := range 2 {
			for x := range 2 {
				black.Set(x, y, color.RGBA{A: 255})
				gray.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
		psnr, err := PSNR(black, gray)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, psnr, 1e-9)
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := PSNR(a, image.NewRGBA(image.Rect(0, 0, 3, 3)))
		assert.ErrorIs(t, err, ErrBoundsMismatch)
	})
}
