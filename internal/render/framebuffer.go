// Package render rasterizes texture and material previews: an
// environment-camera panorama and a lit sphere. Both drive every pixel
// through the texture pipeline with real screen-space derivatives.
package render

import (
	"image"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/spectrum"
	"pbrtex-renderer/internal/texture"
)

// FrameBuffer holds the rendering target as a flat RGBA slice.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (transparent black) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// SetRGB writes an opaque pixel, encoding linear light to 8-bit sRGB.
func (fb *FrameBuffer) SetRGB(x, y int, c spectrum.RGB) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = encodeChannel(c.R)
	fb.Pix[i+1] = encodeChannel(c.G)
	fb.Pix[i+2] = encodeChannel(c.B)
	fb.Pix[i+3] = 255
}

// Image wraps the buffer as an NRGBA image without copying.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

func encodeChannel(v float64) uint8 {
	v = texture.GammaCorrect(geometry.Clamp(v, 0, 1))
	return uint8(v*255 + 0.5)
}
