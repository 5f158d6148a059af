package yuv

import "math"

// https://github.com/opencv/opencv/blob/0e88b49a53842f0f7cdc4c61b98c283be7e5057c/modules/imgproc/src/opencl/color_yuv.cl#L148-L234

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
	uf = 0.492
	vf = 0.877
)

const (
	vr = 1.140
	ug = -0.395
	vg = -0.581
	ub = 2.032
)

// FromRGB converts 8-bit RGB to YUV rounded to integers.
// Y is in [0, 255]; U and V are centered on zero.
func FromRGB(r, g, b uint8) (y, u, v int) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	fy := yr*fr + yg*fg + yb*fb
	return round(fy), round(uf * (fb - fy)), round(vf * (fr - fy))
}

// ToRGB converts integer YUV back to 8-bit RGB, clipping out of range channels.
func ToRGB(y, u, v int) (r, g, b uint8) {
	fy, fu, fv := float64(y), float64(u), float64(v)
	return clip8(fy + vr*fv), clip8(fy + ug*fu + vg*fv), clip8(fy + ub*fu)
}

// FromRGBBatch converts packed RGB triples into packed YUV triples.
// dst must be at least as long as rgb.
func FromRGBBatch(rgb []uint8, dst []int) {
	for i := 0; i+2 < len(rgb); i += 3 {
		dst[i], dst[i+1], dst[i+2] = FromRGB(rgb[i], rgb[i+1], rgb[i+2])
	}
}

func round(f float64) int {
	return int(math.Round(f))
}

func clip8(c float64) uint8 {
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(math.Round(c))
}
