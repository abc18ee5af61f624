package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"

	"github.com/jmylchreest/nightowl/internal/colour"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, fs afero.Fs, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/img/red.png", solidImage(4, 4, color.RGBA{R: 255, A: 255}))
	if err := afero.WriteFile(fs, "/img/broken.png", []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(fs)

	img, err := loader.Load("/img/red.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "corrupt", path: "/img/broken.png"},
		{name: "missing", path: "/img/nope.png"},
		{name: "empty path", path: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path)
			var decodeErr *ImageDecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected ImageDecodeError, got %v", err)
			}
			if decodeErr.Path != tt.path {
				t.Errorf("error path = %q, want %q", decodeErr.Path, tt.path)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/img/ok.png", solidImage(2, 2, color.Black))
	if err := fs.MkdirAll("/img/dir", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/img/text.png", []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid", path: "/img/ok.png"},
		{name: "empty", path: "", wantErr: true},
		{name: "url", path: "https://example.com/a.png", wantErr: true},
		{name: "directory", path: "/img/dir", wantErr: true},
		{name: "missing", path: "/img/missing.png", wantErr: true},
		{name: "not an image", path: "/img/text.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(fs, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	for _, p := range []string{"a.JPG", "b.webp", "c.tiff", "d.bmp"} {
		if !IsImageFile(p) {
			t.Errorf("%s should be an image file", p)
		}
	}
	if IsImageFile("notes.txt") {
		t.Error("notes.txt should not be an image file")
	}
}

func TestSampleSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{name: "small", w: 4, h: 4},
		{name: "wide", w: 640, h: 90},
		{name: "exact", w: 200, h: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := NewSampler().Sample(solidImage(tt.w, tt.h, color.RGBA{G: 200, A: 255}))
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			if len(samples) != DefaultSampleSize*DefaultSampleSize {
				t.Fatalf("got %d samples, want %d", len(samples), DefaultSampleSize*DefaultSampleSize)
			}
			for _, s := range samples {
				if s != (colour.RGB{G: 200}) {
					t.Fatalf("solid image sampled as %v", s)
				}
			}
		})
	}
}

func TestSampleRowMajor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 10, A: 255})
	img.Set(1, 0, color.RGBA{R: 20, A: 255})
	img.Set(0, 1, color.RGBA{R: 30, A: 255})
	img.Set(1, 1, color.RGBA{R: 40, A: 255})

	samples, err := (&Sampler{Size: 2}).Sample(img)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, want := range []uint8{10, 20, 30, 40} {
		if samples[i].R != want {
			t.Errorf("sample %d R = %d, want %d", i, samples[i].R, want)
		}
	}
}

func TestSampleHardEdgeStaysInRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for y := range 400 {
		for x := range 400 {
			v := uint8(100)
			if x >= 200 {
				v = 150
			}
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	samples, err := NewSampler().Sample(img)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, s := range samples {
		if s.R < 100 || s.R > 150 {
			t.Fatalf("sample %d = %v, outside the source range", i, s)
		}
	}
}

func TestSampleFlattensAlpha(t *testing.T) {
	transparent := solidImage(8, 8, color.RGBA{})
	samples, err := (&Sampler{Size: 8}).Sample(transparent)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	white := colour.RGB{R: 255, G: 255, B: 255}
	if samples[0] != white {
		t.Errorf("transparent pixel sampled as %v, want white", samples[0])
	}

	onBlack, err := (&Sampler{Size: 8, Background: color.Black}).Sample(transparent)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if onBlack[0] != (colour.RGB{}) {
		t.Errorf("transparent pixel on black sampled as %v", onBlack[0])
	}
}

func TestSampleEmpty(t *testing.T) {
	if _, err := NewSampler().Sample(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestSaveWallpaper(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := SaveWallpaper(fs, solidImage(3, 2, color.RGBA{B: 90, A: 255}), "/out/theme", nil)
	if err != nil {
		t.Fatalf("SaveWallpaper: %v", err)
	}
	if path != "/out/theme/wallpaper.png" {
		t.Errorf("path = %q", path)
	}

	img, err := NewFileLoader(fs).Load(path)
	if err != nil {
		t.Fatalf("reload wallpaper: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("wallpaper bounds = %v", img.Bounds())
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)); got != (color.NRGBA{B: 90, A: 255}) {
		t.Errorf("wallpaper pixel = %v", got)
	}
}
