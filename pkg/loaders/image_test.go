package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// newQuadrantImage returns a 2x2 image: white, red on the top row and
// green, blue on the bottom row
func newQuadrantImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, path string, img image.Image, encode func(io.Writer, image.Image) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestLoadImage_Formats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "test.png", png.Encode},
		{"bmp", "test.bmp", bmp.Encode},
		{"tiff", "test.tiff", func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeImage(t, path, newQuadrantImage(), tt.encode)

			data, width, height, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if width != 2 || height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", width, height)
			}

			// Rows are bottom-up: green, blue first, then white, red
			expected := []byte{
				0, 255, 0, 0, 0, 255,
				255, 255, 255, 255, 0, 0,
			}
			if len(data) != len(expected) {
				t.Fatalf("Expected %d bytes, got %d", len(expected), len(data))
			}
			for i := range expected {
				if data[i] != expected[i] {
					t.Errorf("byte %d: expected %d, got %d", i, expected[i], data[i])
				}
			}
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "nonexistent.png"},
		{"undecodable file", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := LoadImage(tt.path)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !errors.Is(err, core.ErrTextureLoad) {
				t.Errorf("Expected a texture load error, got %v", err)
			}
			var loadErr *core.TextureLoadError
			if !errors.As(err, &loadErr) || loadErr.Path != tt.path {
				t.Errorf("Expected the error to name %q, got %v", tt.path, err)
			}
		})
	}
}

func TestLoadTexture_Orientation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadrants.png")
	writeImage(t, path, newQuadrantImage(), png.Encode)

	texture, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	// v=0 is the bottom of the picture
	if got := texture.Sample(core.NewVec2(0, 0)); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Sample(0,0) = %v, want green", got)
	}
	if got := texture.Sample(core.NewVec2(1, 1)); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Sample(1,1) = %v, want red", got)
	}
}

func TestNewFileTexture_Errors(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		data   []byte
	}{
		{"short data", 2, 2, make([]byte, 5)},
		{"negative size", -1, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texture, err := newFileTexture("wood.png", tt.width, tt.height, tt.data)
			if err == nil || texture != nil {
				t.Fatalf("Expected an error and no texture, got %v, %v", texture, err)
			}
			var loadErr *core.TextureLoadError
			if !errors.As(err, &loadErr) || loadErr.Path != "wood.png" {
				t.Errorf("Expected the error to name wood.png, got %v", err)
			}
			if n := strings.Count(err.Error(), "unable to load texture map"); n != 1 {
				t.Errorf("Error message repeats its prefix %d times: %v", n, err)
			}
		})
	}
}

func TestLoadCubeMapDir(t *testing.T) {
	dir := t.TempDir()
	red := image.NewRGBA(image.Rect(0, 0, 1, 1))
	red.Set(0, 0, color.RGBA{R: 255, A: 255})
	writeImage(t, filepath.Join(dir, "posx.png"), red, png.Encode)

	cube, err := LoadCubeMapDir(dir)
	if err != nil {
		t.Fatalf("LoadCubeMapDir failed: %v", err)
	}

	if got := cube.Color(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))); got != core.NewVec3(1, 0, 0) {
		t.Errorf("+x face = %v, want red", got)
	}
	if got := cube.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != core.Gray(1) {
		t.Errorf("missing +y face = %v, want white", got)
	}

	if _, err := LoadCubeMapDir(t.TempDir()); !errors.Is(err, core.ErrTextureLoad) {
		t.Errorf("empty directory: expected a texture load error, got %v", err)
	}
}

func TestLoadCubeMap_BadFace(t *testing.T) {
	paths := [6]string{"", "missing.png"}
	if _, err := LoadCubeMap(paths); !errors.Is(err, core.ErrTextureLoad) {
		t.Errorf("expected a texture load error, got %v", err)
	}
}
