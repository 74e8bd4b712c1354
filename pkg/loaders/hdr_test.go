package loaders

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildFlatHDR assembles a minimal old-style (non-RLE) Radiance HDR byte
// stream for a width x height image, one RGBE quadruplet per pixel.
func buildFlatHDR(width, height int, pixels [][4]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\n")
	buf.WriteString("FORMAT=32-bit_rle_rgbe\n")
	buf.WriteString("\n")
	buf.WriteString("-Y ")
	buf.WriteString(itoa(height))
	buf.WriteString(" +X ")
	buf.WriteString(itoa(width))
	buf.WriteString("\n")
	for _, p := range pixels {
		buf.Write(p[:])
	}
	return buf.Bytes()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestDecodeHDRFlatScanlineRoundTrips(t *testing.T) {
	// A 2x1 image: near-full-scale red, then a defined-black pixel.
	pixels := [][4]byte{
		{255, 0, 0, 128}, // exponent 128 => scale 1/256, red ~= 255.5/256
		{0, 0, 0, 0},     // exponent 0 => defined as black
	}
	data := buildFlatHDR(2, 1, pixels)

	img, err := decodeHDR(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.InDelta(t, 255.5/256.0, img.Pixels[0].X, 1e-6)
	assert.InDelta(t, 0.5/256.0, img.Pixels[0].Y, 1e-6)
	assert.Equal(t, 0.0, img.Pixels[1].X)
	assert.Equal(t, 0.0, img.Pixels[1].Y)
	assert.Equal(t, 0.0, img.Pixels[1].Z)
}

func TestDecodeHDRRejectsMissingSignature(t *testing.T) {
	_, err := decodeHDR(bytes.NewReader([]byte("not an hdr file\n\n-Y 1 +X 1\n")))
	assert.Error(t, err)
}

func TestRGBEToVec3ExponentScaling(t *testing.T) {
	// exponent 128 means scale = 2^(128-136) = 1/256.
	c := rgbeToVec3(128, 64, 32, 128)
	assert.InDelta(t, 128.5/256.0, c.X, 1e-6)
	assert.InDelta(t, 64.5/256.0, c.Y, 1e-6)
	assert.InDelta(t, 32.5/256.0, c.Z, 1e-6)
}

func TestRGBEToVec3ZeroExponentIsBlack(t *testing.T) {
	c := rgbeToVec3(200, 200, 200, 0)
	assert.Equal(t, 0.0, c.X)
	assert.Equal(t, 0.0, c.Y)
	assert.Equal(t, 0.0, c.Z)
}
