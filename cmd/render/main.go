package main

import (
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"pbrtex-renderer/internal/config"
	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/material"
	"pbrtex-renderer/internal/params"
	"pbrtex-renderer/internal/render"
	"pbrtex-renderer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Source image file (png/jpeg/tga/bmp/tiff)")
	output := flag.String("output", "", "Output WebP path (default: preview.webp)")
	mode := flag.String("mode", "", "Preview mode: panorama or sphere")
	filter := flag.String("filter", "", "Filtering: ewa or trilinear")
	wrap := flag.String("wrap", "", "Wrap mode: repeat, clamp or black")
	width := flag.Int("width", 0, "Output width in pixels")
	yaw := flag.Float64("yaw", 0, "Camera yaw in degrees (panorama mode)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		Input:   *input,
		Output:  *output,
		Mode:    *mode,
		Filter:  *filter,
		Wrap:    *wrap,
		Width:   *width,
		Workers: *workers,
	})

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: no input image. Use -input or config.json.")
		os.Exit(1)
	}

	fmt.Printf("Texture preview: %s (%s, wrap=%s)\n", cfg.Input, cfg.Filter, cfg.Wrap)
	fmt.Printf("Mode: %s, %dx%d, workers: %d\n", cfg.Mode, cfg.Width, cfg.Height, cfg.Workers)

	start := time.Now()

	result, err := renderPreview(cfg, *yaw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create %s: %v\n", cfg.Output, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, result, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: WebP encode: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done in %.1fs: %s\n", time.Since(start).Seconds(), cfg.Output)
}

func renderPreview(cfg config.Config, yawDegrees float64) (*image.NRGBA, error) {
	tp := textureParams(cfg)
	opts := render.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Workers:     cfg.Workers,
		Supersample: cfg.Supersample,
	}

	switch cfg.Mode {
	case "sphere":
		mat, err := material.PlasticFromParams(tp)
		if err != nil {
			return nil, err
		}
		light := geometry.Vec3{X: 0.4, Y: 0.7, Z: 0.6}
		return render.SpherePreview(mat, light, opts), nil
	default:
		tex, err := texture.NewRGBFromParams(tp)
		if err != nil {
			return nil, err
		}
		camToWorld := geometry.Mat4RotateY(yawDegrees * math.Pi / 180)
		return render.Panorama(tex, camToWorld, opts), nil
	}
}

func textureParams(cfg config.Config) *params.TextureParams {
	values := map[string]any{
		"filename":      cfg.Input,
		"kd":            cfg.Input,
		"wrap":          cfg.Wrap,
		"trilinear":     cfg.Filter == "trilinear",
		"scale":         cfg.Scale,
		"maxanisotropy": cfg.MaxAnisotropy,
	}
	if cfg.Gamma != nil {
		values["gamma"] = *cfg.Gamma
	}
	return params.New(values)
}
