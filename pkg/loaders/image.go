package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads an image and converts it to a linear-space Vec3 array.
// HDR (Radiance .hdr/.pic) files are already linear; PNG/JPEG are treated
// as sRGB-encoded and gamma-decoded on load.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".hdr" || ext == ".pic" {
		data, err := decodeHDR(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HDR image: %w", err)
		}
		return data, nil
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; reduce to 8-bit sRGB before
			// gamma-decoding to linear.
			pixels[y*width+x] = material.GammaDecodeLDR(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
