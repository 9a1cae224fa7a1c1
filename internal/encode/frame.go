package encode

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Frame is one decoded image in packed 8-bit RGB, row-major, no padding.
// This is the color representation every Sink consumes.
type Frame struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*3
}

// FrameLoader reads a source image by path.
type FrameLoader interface {
	Load(path string) (image.Image, error)
}

// FileLoader decodes png, jpeg, bmp and tiff files from disk.
type FileLoader struct{}

// Load opens and decodes path, sniffing the format from its header.
func (FileLoader) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// ToRGB24 converts img to a packed RGB Frame, dropping alpha. Images with
// alpha are composited onto black, the same as a video player would show
// a transparent region.
func ToRGB24(img image.Image) Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 0, w*h*3)

	// Fast paths for the decoders' common concrete types.
	switch src := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				pix = append(pix, row[i], row[i+1], row[i+2])
			}
		}
		return Frame{Width: w, Height: h, Pix: pix}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				a := uint32(row[i+3])
				pix = append(pix,
					uint8(uint32(row[i])*a/0xff),
					uint8(uint32(row[i+1])*a/0xff),
					uint8(uint32(row[i+2])*a/0xff))
			}
		}
		return Frame{Width: w, Height: h, Pix: pix}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pix = append(pix, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return Frame{Width: w, Height: h, Pix: pix}
}
