package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// WritePPM writes a tonemapped, row-major pixel buffer as a binary (P6)
// PPM file.
func WritePPM(path string, pixels [][]core.Vec3, tonemap Tonemap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderer: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	buf := make([]byte, 3)
	for _, row := range pixels {
		for _, p := range row {
			tm := tonemap(p)
			buf[0] = toByte(tm.X)
			buf[1] = toByte(tm.Y)
			buf[2] = toByte(tm.Z)
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("renderer: write pixel: %w", err)
			}
		}
	}
	return w.Flush()
}

// WritePNG writes a tonemapped, row-major pixel buffer as an 8-bit PNG.
func WritePNG(path string, pixels [][]core.Vec3, tonemap Tonemap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderer: create %s: %w", path, err)
	}
	defer f.Close()

	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, p := range row {
			tm := tonemap(p)
			img.SetRGBA(x, y, color.RGBA{R: toByte(tm.X), G: toByte(tm.Y), B: toByte(tm.Z), A: 255})
		}
	}

	return png.Encode(f, img)
}

func toByte(v float64) byte {
	v = v*255.0 + 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
