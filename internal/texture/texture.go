package texture

import "pbrtex-renderer/internal/geometry"

// Texture is the evaluation contract shared by image-backed and procedural
// textures; materials consume it without knowing which they hold.
type Texture[T any] interface {
	Evaluate(si *geometry.SurfaceInteraction) T
}

// Constant evaluates to the same value everywhere.
type Constant[T any] struct {
	value T
}

// NewConstant wraps v as a texture.
func NewConstant[T any](v T) *Constant[T] {
	return &Constant[T]{value: v}
}

func (c *Constant[T]) Evaluate(*geometry.SurfaceInteraction) T {
	return c.value
}
