package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

// DefaultFormat is used when an output path has no extension.
const DefaultFormat = "jpg"

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load decodes the image stored at path. Any registered format is accepted:
// png, jpeg, gif, bmp, tiff and webp.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// Save encodes img into path using the format named by its extension.
func Save(path string, img image.Image) (err error) {
	format := Format(path)
	if !Supported(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, format)
}

// Encode writes img to w in the given format.
// GIF output needs an *image.Paletted to keep the clustered colors exact.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "png":
		return png.Encode(w, img)
	case "gif":
		if p, ok := img.(*image.Paletted); ok {
			return gif.Encode(w, p, &gif.Options{NumColors: len(p.Palette)})
		}
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Supported reports whether Encode can write format.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff":
		return true
	}
	return false
}

// Format returns the lower-cased extension of path without the dot,
// or DefaultFormat if there is none.
func Format(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return DefaultFormat
	}
	return strings.ToLower(ext)
}

// EnsureExt appends the default extension to a path without one.
func EnsureExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + "." + DefaultFormat
	}
	return path
}

// OutputPath decides where the k-color version of input is written.
//
//   - empty output: next to input, named after it
//   - existing directory: inside it, named after input
//   - anything else: output itself
//
// Returned paths other than the first case are absolute.
func OutputPath(output, input string, k int) (string, error) {
	if output == "" {
		return derive(input, k), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Abs(filepath.Join(output, filepath.Base(derive(input, k))))
	}
	return filepath.Abs(output)
}

func derive(input string, k int) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + "-output-" + strconv.Itoa(k) + "-colors." + DefaultFormat
	}
	return strings.TrimSuffix(input, ext) + "-output-" + strconv.Itoa(k) + "." + DefaultFormat
}

// IntermediatePath names the snapshot written after the given iteration.
func IntermediatePath(output string, iteration int) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-iter-" + strconv.Itoa(iteration) + ext
}
