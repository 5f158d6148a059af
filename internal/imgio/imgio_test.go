package imgio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	test := []struct {
		path string
		exp  string
	}{
		{"a.png", "png"},
		{"dir.v2/a.JPEG", "jpeg"},
		{"a", "jpg"},
		{"/tmp/x/photo.tiff", "tiff"},
	}
	for _, tt := range test {
		assert.Equal(t, tt.exp, Format(tt.path), tt.path)
	}
	assert.Equal(t, "out.jpg", EnsureExt("out"))
	assert.Equal(t, "out.png", EnsureExt("out.png"))
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	p, err := OutputPath("", "photos/cat.png", 8)
	require.NoError(t, err)
	assert.Equal(t, "photos/cat-output-8.jpg", p)

	p, err = OutputPath("", "photos/cat", 8)
	require.NoError(t, err)
	assert.Equal(t, "photos/cat-output-8-colors.jpg", p)

	p, err = OutputPath(dir, "photos/cat.png", 4)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cat-output-4.jpg"), p)

	target := filepath.Join(dir, "small.png")
	p, err = OutputPath(target, "photos/cat.png", 4)
	require.NoError(t, err)
	assert.Equal(t, target, p)

	p, err = OutputPath("rel.png", "cat.png", 4)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "rel.png", filepath.Base(p))
}

func TestIntermediatePath(t *testing.T) {
	assert.Equal(t, "/tmp/cat-output-8-iter-3.jpg", IntermediatePath("/tmp/cat-output-8.jpg", 3))
	assert.Equal(t, "out-iter-10", IntermediatePath("out", 10))
}

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 100), B: 30, A: 255})
		}
	}
	return img
}

func TestEncode(t *testing.T) {
	lossless := map[string]bool{"png": true, "bmp": true, "tiff": true, "tif": true}
	for _, format := range []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff"} {
		t.Run(format, func(t *testing.T) {
			src := sample()
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, format))
			got, _, err := image.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), got.Bounds())
			if lossless[format] {
				for y := range 3 {
					for x := range 4 {
						assert.Equal(t, src.At(x, y), color.NRGBAModel.Convert(got.At(x, y)))
					}
				}
			}
		})
	}

	err := Encode(&bytes.Buffer{}, sample(), "xcf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncode_PalettedGIF(t *testing.T) {
	palette := color.Palette{color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	src.SetColorIndex(1, 0, 1)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src, "gif"))
	got, _, err := image.Decode(&buf)
	require.NoError(t, err)
	p, ok := got.(*image.Paletted)
	require.True(t, ok)
	assert.Len(t, p.Palette, 2)
	assert.Equal(t, color.RGBAModel.Convert(palette[0]), color.RGBAModel.Convert(p.At(0, 0)))
	assert.Equal(t, color.RGBAModel.Convert(palette[1]), color.RGBAModel.Convert(p.At(1, 0)))
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	require.NoError(t, Save(path, sample()))

	img, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, sample().Bounds(), img.Bounds())

	err = Save(filepath.Join(dir, "sample.xcf"), sample())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(filepath.Join(dir, "sample.xcf"))
	assert.True(t, os.IsNotExist(statErr))

	_, _, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o644))
	_, _, err = Load(filepath.Join(dir, "junk.png"))
	assert.Error(t, err)
}
