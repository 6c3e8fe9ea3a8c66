package texture

import "math"

// resampleWeight maps one output texel to its four contributing source
// texels and their normalized filter weights.
type resampleWeight struct {
	firstTexel int
	weight     [4]float64
}

const resampleFilterWidth = 2.0

// resampleWeightsFor computes magnification weights from oldRes to newRes
// using a Lanczos-windowed sinc with four taps per output texel.
func resampleWeightsFor(oldRes, newRes int) []resampleWeight {
	weights := make([]resampleWeight, newRes)
	for i := range weights {
		center := (float64(i) + 0.5) * float64(oldRes) / float64(newRes)
		first := int(math.Floor(center-resampleFilterWidth+0.5))
		weights[i].firstTexel = first

		sum := 0.0
		for j := 0; j < 4; j++ {
			pos := float64(first+j) + 0.5
			weights[i].weight[j] = lanczosSinc((pos-center)/resampleFilterWidth, 2)
			sum += weights[i].weight[j]
		}
		inv := 1 / sum
		for j := 0; j < 4; j++ {
			weights[i].weight[j] *= inv
		}
	}
	return weights
}

// lanczosSinc evaluates sinc(x·tau)·sinc(x) for |x| ≤ 1, zero outside.
func lanczosSinc(x, tau float64) float64 {
	x = math.Abs(x)
	if x < 1e-5 {
		return 1
	}
	if x > 1 {
		return 0
	}
	x *= math.Pi
	window := math.Sin(x*tau) / (x * tau)
	return window * math.Sin(x) / x
}

// resampleToPowerOfTwo magnifies a base image to the next power of two on
// each non-conforming axis. Out-of-range source texels resolve through the
// wrap mode; the sinc's negative lobes are kept from undershooting by
// clamping resampled texels to non-negative.
func resampleToPowerOfTwo[T Texel[T]](texels []T, width, height int, wrap WrapMode) ([]T, int, int) {
	src := level[T]{width: width, height: height, texels: texels}

	if !isPowerOfTwo(width) {
		newW := nextPowerOfTwo(width)
		weights := resampleWeightsFor(width, newW)
		out := make([]T, newW*height)
		for y := 0; y < height; y++ {
			for x := 0; x < newW; x++ {
				rw := &weights[x]
				var t T
				for j := 0; j < 4; j++ {
					t = t.Add(src.texel(rw.firstTexel+j, y, wrap).Scale(rw.weight[j]))
				}
				out[y*newW+x] = t.Clamp(0, math.Inf(1))
			}
		}
		src = level[T]{width: newW, height: height, texels: out}
		width = newW
	}

	if !isPowerOfTwo(height) {
		newH := nextPowerOfTwo(height)
		weights := resampleWeightsFor(height, newH)
		out := make([]T, width*newH)
		for x := 0; x < width; x++ {
			for y := 0; y < newH; y++ {
				rw := &weights[y]
				var t T
				for j := 0; j < 4; j++ {
					t = t.Add(src.texel(x, rw.firstTexel+j, wrap).Scale(rw.weight[j]))
				}
				out[y*width+x] = t.Clamp(0, math.Inf(1))
			}
		}
		src = level[T]{width: width, height: newH, texels: out}
		height = newH
	}

	return src.texels, width, height
}
