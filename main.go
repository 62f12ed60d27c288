package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"fortio.org/log"
	"fortio.org/safecast"
	"fortio.org/terminal/ansipixels"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"golang.org/x/image/draw"
)

// envPrefix prefixes the environment variables read into core.RenderConfig
const envPrefix = "RT_"

// options holds everything the command line controls besides RenderConfig
type options struct {
	sceneID   string
	width     int
	height    int
	aa        bool
	out       string
	preview   bool
	list      bool
	help      bool
	sceneOpts scene.Options
}

// parseFlags layers command line flags over config, which already carries
// the defaults and any environment overrides
func parseFlags(args []string, config core.RenderConfig, output io.Writer) (options, core.RenderConfig, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneID, "scene", "default", "Built-in scene to render (see -list)")
	fs.IntVar(&opts.width, "width", 400, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = from the scene's aspect ratio)")
	fs.BoolVar(&opts.aa, "aa", false, "Use adaptive supersampling")
	fs.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.preview, "preview", false, "Show the render in the terminal when done")
	fs.BoolVar(&opts.list, "list", false, "List the built-in scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	fs.StringVar(&opts.sceneOpts.TexturePath, "texture", "", "Image file for the textures scene")
	fs.StringVar(&opts.sceneOpts.CubeMapPath, "cubemap", "", "Directory of posx/negx/posy/negy/posz/negz images used as the environment")
	fs.StringVar(&opts.sceneOpts.MeshPath, "mesh", "", "PLY file for the mesh scene")

	fs.IntVar(&config.MaxDepth, "depth", config.MaxDepth, "Maximum reflection/refraction depth")
	fs.Float64Var(&config.AAThreshold, "aa-threshold", config.AAThreshold, "Corner difference that splits a pixel")
	fs.IntVar(&config.MaxSplits, "aa-splits", config.MaxSplits, "Maximum pixel subdivision depth")
	fs.Float64Var(&config.Threshold, "threshold", config.Threshold, "Skip secondary rays weaker than this (0 = never)")
	fs.IntVar(&config.Workers, "workers", config.Workers, "Number of parallel workers (0 = number of CPUs)")
	fs.IntVar(&config.BlockSize, "block", config.BlockSize, "Edge length of a render block in pixels")
	fs.BoolVar(&config.Debug, "debug", config.Debug, "Verbose logging with per-light shading traces")

	if err := fs.Parse(args); err != nil {
		return opts, config, err
	}
	if fs.NArg() > 0 {
		return opts, config, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.width <= 0 || opts.height < 0 {
		return opts, config, fmt.Errorf("invalid image size %dx%d", opts.width, opts.height)
	}
	if opts.height > 0 {
		opts.sceneOpts.AspectRatio = float64(opts.width) / float64(opts.height)
	}
	if opts.help {
		fmt.Fprintln(output, "Whitted Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintf(output, "Render settings can also be set with %sMAX_DEPTH, %sAA_THRESHOLD, %sWORKERS, ...\n",
			envPrefix, envPrefix, envPrefix)
	}
	return opts, config, config.Validate()
}

func main() {
	config, err := core.LoadRenderConfigFromEnv(envPrefix)
	if err != nil {
		log.Fatalf("%v", err)
	}
	opts, config, err := parseFlags(os.Args[1:], config, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if config.Debug {
		log.SetLogLevel(log.Verbose)
	}

	switch {
	case opts.help:
		printScenes(os.Stdout)
		return
	case opts.list:
		printScenes(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := render(ctx, opts, config)
	if err != nil {
		log.Fatalf("%v", err)
	}

	filename := opts.out
	if filename == "" {
		filename = createOutputPath(opts.sceneID, time.Now())
	}
	if err := writePNG(filename, img); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("Render saved as %s", filename)

	if opts.preview {
		if err := preview(img); err != nil {
			log.Errf("Preview failed: %v", err)
		}
	}
}

// printScenes lists the built-in scenes
func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// render loads the scene and traces it into an image
func render(ctx context.Context, opts options, config core.RenderConfig) (*image.RGBA, error) {
	s, err := scene.Load(opts.sceneID, opts.sceneOpts)
	if err != nil {
		return nil, err
	}

	width, height := opts.width, opts.height
	if height == 0 {
		height = max(1, safecast.MustTruncate[int](math.Round(float64(width)/s.Camera().AspectRatio())))
	}

	raytracer, err := renderer.NewRaytracer(s, width, height, config)
	if err != nil {
		return nil, err
	}

	log.S(log.Info, "Rendering",
		log.Str("scene", opts.sceneID),
		log.Any("width", width),
		log.Any("height", height),
		log.Any("aa", opts.aa),
		log.Any("depth", config.MaxDepth))

	var stats renderer.RenderStats
	if opts.aa {
		stats, err = raytracer.AAImage(ctx)
	} else {
		stats, err = raytracer.TraceImage(ctx)
	}
	if err != nil {
		return nil, err
	}

	log.S(log.Info, "Render completed",
		log.Any("duration", stats.Duration.Round(time.Millisecond).String()),
		log.Any("avg_samples", stats.AverageSamples),
		log.Any("rays", stats.Rays))

	img := raytracer.Buffer().Image()
	log.LogVf("Average luminance %.4f", renderer.CalculateAverageLuminance(img))
	return img, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneID string, now time.Time) string {
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// writePNG encodes img to filename, creating parent directories
func writePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

// fitImage scales img to fit in width x height while keeping its aspect
func fitImage(img image.Image, width, height int) *image.RGBA {
	bounds := img.Bounds()
	scale := min(float64(width)/float64(bounds.Dx()), float64(height)/float64(bounds.Dy()))
	w := max(1, safecast.MustTruncate[int](float64(bounds.Dx())*scale))
	h := max(1, safecast.MustTruncate[int](float64(bounds.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// preview shows img in the terminal until a key is pressed
func preview(img image.Image) error {
	ap := ansipixels.NewAnsiPixels(10)
	if err := ap.Open(); err != nil {
		return err
	}
	ap.HideCursor()
	defer func() {
		ap.ShowCursor()
		ap.ClearScreen()
		ap.Restore()
	}()

	// Each terminal cell holds two pixels vertically
	scaled := fitImage(img, ap.W, ap.H*2)
	ap.OnResize = func() error {
		ap.ClearScreen()
		scaled = fitImage(img, ap.W, ap.H*2)
		return nil
	}
	ap.ClearScreen()

	return ap.FPSTicks(context.Background(), func(context.Context) bool {
		var err error
		ap.StartSyncMode()
		if ap.ColorOutput.TrueColor {
			err = ap.DrawTrueColorImage(0, 0, scaled)
		} else {
			err = ap.Draw216ColorImage(0, 0, scaled)
		}
		ap.EndSyncMode()
		return err == nil && len(ap.Data) == 0
	})
}
