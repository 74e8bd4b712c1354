package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// decodeHDR reads a Radiance RGBE (.hdr/.pic) image: a text header, a blank
// line, a "-Y height +X width" resolution line, then either old-style flat
// RGBE scanlines or new-style per-channel RLE scanlines. No example repo in
// the corpus carries an HDR codec, so this is transcribed directly from the
// format Radiance itself defines (Ward, "Real Pixels", Graphics Gems II).
func decodeHDR(r io.Reader) (*ImageData, error) {
	br := bufio.NewReader(r)

	if err := skipHDRHeader(br); err != nil {
		return nil, err
	}

	width, height, err := readHDRResolution(br)
	if err != nil {
		return nil, err
	}

	pixels := make([]core.Vec3, width*height)
	scanline := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readHDRScanline(br, scanline, width); err != nil {
			return nil, fmt.Errorf("hdr: scanline %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			pixels[y*width+x] = rgbeToVec3(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

func skipHDRHeader(br *bufio.Reader) error {
	first, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("hdr: reading signature: %w", err)
	}
	if !strings.HasPrefix(first, "#?") {
		return fmt.Errorf("hdr: missing #? signature line")
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return fmt.Errorf("hdr: reading header: %w", err)
		}
		if strings.TrimRight(line, "\r\n") == "" {
			return nil
		}
	}
}

func readHDRResolution(br *bufio.Reader) (width, height int, err error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: reading resolution line: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("hdr: unsupported resolution line %q (only top-down -Y H +X W is supported)", line)
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: bad height in resolution line: %w", err)
	}
	width, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: bad width in resolution line: %w", err)
	}
	return width, height, nil
}

// readHDRScanline fills dst (width*4 bytes of packed RGBE) for one scanline,
// dispatching on whether it is new-style RLE-encoded or an old-style flat
// run of RGBE quadruplets.
func readHDRScanline(br *bufio.Reader, dst []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return err
	}

	isNewRLE := width >= 8 && width < 0x8000 && head[0] == 2 && head[1] == 2 && int(head[2])<<8|int(head[3]) == width
	if !isNewRLE {
		return readHDRFlatScanline(br, dst, width, head)
	}

	for channel := 0; channel < 4; channel++ {
		x := 0
		for x < width {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				run := int(count) - 128
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < run; i++ {
					dst[(x+i)*4+channel] = value
				}
				x += run
			} else {
				run := int(count)
				for i := 0; i < run; i++ {
					v, err := br.ReadByte()
					if err != nil {
						return err
					}
					dst[(x+i)*4+channel] = v
				}
				x += run
			}
		}
	}
	return nil
}

// readHDRFlatScanline handles the old Radiance format, where every pixel is
// a literal 4-byte RGBE quadruplet (head is the already-consumed first one).
func readHDRFlatScanline(br *bufio.Reader, dst []byte, width int, head [4]byte) error {
	copy(dst[0:4], head[:])
	rest := dst[4:]
	if _, err := io.ReadFull(br, rest); err != nil {
		return err
	}
	return nil
}

// rgbeToVec3 converts a Radiance RGBE quadruplet to linear-space RGB: the
// 8-bit exponent is shared across channels, biased by 128 with an implicit
// /256 for the mantissa bytes (Ward's reference rgbe.c), with the
// convention that an exponent of 0 means black.
func rgbeToVec3(r, g, b, e byte) core.Vec3 {
	if e == 0 {
		return core.Vec3{}
	}
	scale := math.Ldexp(1.0, int(e)-(128+8))
	return core.Vec3{X: (float64(r) + 0.5) * scale, Y: (float64(g) + 0.5) * scale, Z: (float64(b) + 0.5) * scale}
}
