package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestParseFlags(t *testing.T) {
	var output bytes.Buffer
	opts, config, err := parseFlags([]string{
		"-scene", "cornell-box", "-width", "64", "-height", "32",
		"-depth", "5", "-aa", "-aa-threshold", "0.2", "-aa-splits", "2",
		"-threshold", "0.01", "-workers", "2", "-block", "8",
		"-mesh", "bunny.ply", "-cubemap", "sky", "-texture", "wood.png",
	}, core.DefaultRenderConfig(), &output)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	if opts.sceneID != "cornell-box" || opts.width != 64 || opts.height != 32 || !opts.aa {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.sceneOpts.AspectRatio != 2 {
		t.Errorf("AspectRatio = %f, want 2", opts.sceneOpts.AspectRatio)
	}
	if opts.sceneOpts.MeshPath != "bunny.ply" || opts.sceneOpts.CubeMapPath != "sky" || opts.sceneOpts.TexturePath != "wood.png" {
		t.Errorf("unexpected scene options %+v", opts.sceneOpts)
	}

	expected := core.RenderConfig{
		MaxDepth:    5,
		Threshold:   0.01,
		AAThreshold: 0.2,
		MaxSplits:   2,
		BlockSize:   8,
		Workers:     2,
	}
	if config != expected {
		t.Errorf("config = %+v, want %+v", config, expected)
	}
}

func TestParseFlags_KeepsEnvironmentValues(t *testing.T) {
	base := core.DefaultRenderConfig()
	base.MaxDepth = 7

	opts, config, err := parseFlags(nil, base, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if config.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want the environment value 7", config.MaxDepth)
	}
	if opts.sceneID != "default" || opts.height != 0 || opts.sceneOpts.AspectRatio != 0 {
		t.Errorf("unexpected defaults %+v", opts)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative depth", []string{"-depth", "-1"}},
		{"zero block", []string{"-block", "0"}},
		{"zero width", []string{"-width", "0"}},
		{"negative height", []string{"-height", "-5"}},
		{"unknown flag", []string{"-bogus"}},
		{"extra argument", []string{"scene.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseFlags(tt.args, core.DefaultRenderConfig(), &bytes.Buffer{}); err == nil {
				t.Errorf("expected an error for %v", tt.args)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var output bytes.Buffer
	opts, _, err := parseFlags([]string{"-help"}, core.DefaultRenderConfig(), &output)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if !opts.help {
		t.Error("help should be set")
	}
	for _, want := range []string{"-scene", "-aa-threshold", "-preview", envPrefix + "MAX_DEPTH"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help output is missing %q", want)
		}
	}
}

func TestPrintScenes(t *testing.T) {
	var output bytes.Buffer
	printScenes(&output)
	for _, id := range []string{"default", "cornell-box", "sphere-grid", "triangle-mesh", "textures", "mesh"} {
		if !strings.Contains(output.String(), id) {
			t.Errorf("scene list is missing %q", id)
		}
	}
}

func TestRender(t *testing.T) {
	config := core.DefaultRenderConfig()
	config.BlockSize = 8

	tests := []struct {
		name       string
		opts       options
		wantWidth  int
		wantHeight int
	}{
		{"height from aspect", options{sceneID: "default", width: 32}, 32, 18},
		{"explicit size", options{sceneID: "cornell-box", width: 16, height: 16, aa: true}, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := render(context.Background(), tt.opts, config)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if img.Bounds().Dx() != tt.wantWidth || img.Bounds().Dy() != tt.wantHeight {
				t.Errorf("image is %v, want %dx%d", img.Bounds(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestRender_UnknownScene(t *testing.T) {
	img, err := render(context.Background(), options{sceneID: "nonexistent", width: 8}, core.DefaultRenderConfig())
	if err == nil {
		t.Fatal("expected an error for an unknown scene")
	}
	if img != nil {
		t.Error("no image should be returned with an error")
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := createOutputPath("cornell-box", now)
	want := filepath.Join("output", "cornell-box", "render_20240305_140709.png")
	if got != want {
		t.Errorf("createOutputPath() = %q, want %q", got, want)
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	filename := filepath.Join(t.TempDir(), "nested", "render.png")
	if err := writePNG(filename, img); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	r, g, b, _ := decoded.At(1, 2).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel = (%d, %d, %d), want (200, 100, 50)", r>>8, g>>8, b>>8)
	}
}

func TestFitImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	tests := []struct {
		width, height int
		wantW, wantH  int
	}{
		{100, 100, 100, 50},
		{400, 50, 100, 50},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		scaled := fitImage(img, tt.width, tt.height)
		if scaled.Bounds().Dx() != tt.wantW || scaled.Bounds().Dy() != tt.wantH {
			t.Errorf("fitImage(%d, %d) = %v, want %dx%d", tt.width, tt.height, scaled.Bounds(), tt.wantW, tt.wantH)
		}
	}
}
