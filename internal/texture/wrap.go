package texture

// WrapMode resolves texel coordinates outside a pyramid level's bounds.
type WrapMode int

const (
	// WrapRepeat tiles the image by taking coordinates modulo the resolution.
	WrapRepeat WrapMode = iota
	// WrapClamp clamps coordinates to the nearest edge texel.
	WrapClamp
	// WrapBlack returns zero for any out-of-range coordinate.
	WrapBlack
)

// ParseWrapMode maps a configuration string to a WrapMode. Unknown strings
// fall back to repeat; a bad value is never an error.
func ParseWrapMode(s string) WrapMode {
	switch s {
	case "black":
		return WrapBlack
	case "clamp":
		return WrapClamp
	default:
		return WrapRepeat
	}
}

func (w WrapMode) String() string {
	switch w {
	case WrapClamp:
		return "clamp"
	case WrapBlack:
		return "black"
	default:
		return "repeat"
	}
}

// resolve maps index i into [0, n). The second result is false when the
// texel has no source under this mode and must read as zero.
func (w WrapMode) resolve(i, n int) (int, bool) {
	switch w {
	case WrapRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case WrapClamp:
		if i < 0 {
			return 0, true
		}
		if i >= n {
			return n - 1, true
		}
		return i, true
	default: // WrapBlack
		if i < 0 || i >= n {
			return 0, false
		}
		return i, true
	}
}
