package encode

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestToRGB24_RGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(1, 0, color.RGBA{R: 0, G: 128, B: 255, A: 255})

	f := ToRGB24(img)
	want := []byte{255, 0, 0, 0, 128, 255}
	if f.Width != 2 || f.Height != 1 {
		t.Fatalf("size: got %dx%d, want 2x1", f.Width, f.Height)
	}
	if string(f.Pix) != string(want) {
		t.Errorf("Pix: got %v, want %v", f.Pix, want)
	}
}

func TestToRGB24_NRGBAPremultipliesOntoBlack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	f := ToRGB24(img)
	if string(f.Pix) != string([]byte{0, 0, 0}) {
		t.Errorf("transparent pixel: got %v, want black", f.Pix)
	}
}

func TestToRGB24_SubImageOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	f := ToRGB24(sub)
	if f.Width != 2 || f.Height != 2 || len(f.Pix) != 12 {
		t.Fatalf("got %dx%d len %d", f.Width, f.Height, len(f.Pix))
	}
	if f.Pix[0] != 1 || f.Pix[1] != 2 || f.Pix[2] != 3 {
		t.Errorf("first pixel: got %v", f.Pix[:3])
	}
}

func TestToRGB24_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 77})
	f := ToRGB24(img)
	if string(f.Pix) != string([]byte{77, 77, 77}) {
		t.Errorf("gray: got %v", f.Pix)
	}
}

func TestFileLoader_DecodesFormats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))

	pngPath := filepath.Join(dir, "a.png")
	writeWith(t, pngPath, func(f *os.File) error { return png.Encode(f, img) })
	bmpPath := filepath.Join(dir, "b.BMP")
	writeWith(t, bmpPath, func(f *os.File) error { return bmp.Encode(f, img) })

	for _, p := range []string{pngPath, bmpPath} {
		got, err := FileLoader{}.Load(p)
		if err != nil {
			t.Errorf("Load(%s): %v", filepath.Base(p), err)
			continue
		}
		if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
			t.Errorf("Load(%s): bounds %v", filepath.Base(p), got.Bounds())
		}
	}
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := (FileLoader{}).Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: want error")
	}
	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileLoader{}).Load(bad); err == nil {
		t.Error("corrupt file: want error")
	}
}

func writeWith(t *testing.T, path string, enc func(*os.File) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := enc(f); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
