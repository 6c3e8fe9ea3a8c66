package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"pbrtex-renderer/internal/spectrum"
)

// ErrImageLoad marks a missing, unreadable or corrupt source image. It is
// fatal for the texture being constructed and is never retried.
var ErrImageLoad = errors.New("texture: image load failed")

// loadRGB decodes info.Path and builds a color pyramid from it.
func loadRGB(info TexInfo) (*MIPMap[spectrum.RGB], error) {
	img, err := decodeImage(info.Path)
	if err != nil {
		return nil, err
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	texels := make([]spectrum.RGB, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			texels[y*w+x] = spectrum.RGB{
				R: convertChannel(img.Pix[i], info.Gamma) * info.Scale,
				G: convertChannel(img.Pix[i+1], info.Gamma) * info.Scale,
				B: convertChannel(img.Pix[i+2], info.Gamma) * info.Scale,
			}
		}
	}
	return NewMIPMap(texels, w, h, info.Method, info.Wrap, info.MaxAnisotropy), nil
}

// loadScalar decodes info.Path and builds a single-channel pyramid from the
// Rec.709 luminance of the linearized image.
func loadScalar(info TexInfo) (*MIPMap[Scalar], error) {
	img, err := decodeImage(info.Path)
	if err != nil {
		return nil, err
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	texels := make([]Scalar, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			rgb := spectrum.RGB{
				R: convertChannel(img.Pix[i], info.Gamma),
				G: convertChannel(img.Pix[i+1], info.Gamma),
				B: convertChannel(img.Pix[i+2], info.Gamma),
			}
			texels[y*w+x] = Scalar(rgb.Y() * info.Scale)
		}
	}
	return NewMIPMap(texels, w, h, info.Method, info.Wrap, info.MaxAnisotropy), nil
}

// decodeImage reads and decodes any registered image format into NRGBA.
func decodeImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrImageLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrImageLoad, path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any decoded image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha channel to preserve.
		draw.Draw(dst, b, src, b.Min, draw.Src)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}

// convertChannel maps an 8-bit channel to linear light, undoing the sRGB
// transfer curve when gamma correction is requested.
func convertChannel(v uint8, gamma bool) float64 {
	f := float64(v) / 255
	if gamma {
		return inverseGammaCorrect(f)
	}
	return f
}

// inverseGammaCorrect is the sRGB electro-optical transfer function.
func inverseGammaCorrect(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// GammaCorrect is the inverse mapping, used when writing linear values back
// out to 8-bit images.
func GammaCorrect(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
