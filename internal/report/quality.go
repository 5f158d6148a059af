package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrBoundsMismatch is returned when two images being compared differ in size.
var ErrBoundsMismatch = errors.New("image bounds mismatch")

// PSNR returns the peak signal-to-noise ratio in dB between the original
// and the quantized image over their RGB channels. Identical images yield +Inf.
func PSNR(original, quantized image.Image) (float64, error) {
	ob, qb := original.Bounds(), quantized.Bounds()
	if ob.Dx() != qb.Dx() || ob.Dy() != qb.Dy() {
		return 0, fmt.Errorf("%w: %v vs %v", ErrBoundsMismatch, ob, qb)
	}
	if ob.Empty() {
		return 0, fmt.Errorf("%w: empty image", ErrBoundsMismatch)
	}

	var sum float64
	for y := range ob.Dy() {
		for x := range ob.Dx() {
			a := color.NRGBAModel.Convert(original.At(ob.Min.X+x, ob.Min.Y+y)).(color.NRGBA)
			b := color.NRGBAModel.Convert(quantized.At(qb.Min.X+x, qb.Min.Y+y)).(color.NRGBA)
			dr := float64(a.R) - float64(b.R)
			dg := float64(a.G) - float64(b.G)
			db := float64(a.B) - float64(b.B)
			sum += dr*dr + dg*dg + db*db
		}
	}
	mse := sum / float64(3*ob.Dx()*ob.Dy())
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(255*255/mse), nil
}
