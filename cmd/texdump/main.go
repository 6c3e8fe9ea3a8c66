// Command texdump loads a texture through the shared cache and writes every
// MIP pyramid level as a WebP image for inspection.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"pbrtex-renderer/internal/spectrum"
	"pbrtex-renderer/internal/texture"
)

func main() {
	outDir := flag.String("out", ".", "Output directory")
	filter := flag.String("filter", "ewa", "Filtering: ewa or trilinear")
	wrap := flag.String("wrap", "repeat", "Wrap mode: repeat, clamp or black")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texdump [flags] image...")
		os.Exit(1)
	}

	errors := 0
	for _, path := range flag.Args() {
		if err := dumpPyramid(path, *outDir, *filter, *wrap); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}

func dumpPyramid(path, outDir, filter, wrap string) error {
	info := texture.TexInfo{
		Path:          path,
		Method:        texture.ParseFilterMethod(filter),
		Wrap:          texture.ParseWrapMode(wrap),
		Scale:         1,
		Gamma:         texture.GammaDefault(path),
		MaxAnisotropy: 8,
	}
	mipmap, err := texture.RGBMaps.Get(info)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for lvl := 0; lvl < mipmap.Levels(); lvl++ {
		img := levelImage(mipmap, lvl)
		name := filepath.Join(outDir, fmt.Sprintf("%s_level%02d.webp", stem, lvl))
		if err := writeWebP(name, img); err != nil {
			return err
		}
		w, h := mipmap.LevelSize(lvl)
		fmt.Printf("OK  %s level %d (%dx%d) -> %s\n", path, lvl, w, h, name)
	}
	return nil
}

// levelImage renders one pyramid level back to 8-bit sRGB.
func levelImage(m *texture.MIPMap[spectrum.RGB], lvl int) *image.NRGBA {
	w, h := m.LevelSize(lvl)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := m.Texel(lvl, x, y).Clamp(0, 1)
			i := img.PixOffset(x, y)
			img.Pix[i] = encode(t.R)
			img.Pix[i+1] = encode(t.G)
			img.Pix[i+2] = encode(t.B)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func encode(v float64) uint8 {
	return uint8(texture.GammaCorrect(v)*255 + 0.5)
}

func writeWebP(name string, img *image.NRGBA) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
