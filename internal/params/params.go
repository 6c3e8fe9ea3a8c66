// Package params provides typed access with defaults over the loosely keyed
// parameter sets that drive texture and material construction.
package params

// TextureParams wraps a key/value set. Lookups never fail: a missing or
// mistyped value yields the caller's default.
type TextureParams struct {
	values map[string]any
}

// New wraps values in a TextureParams. A nil map is a valid empty set.
func New(values map[string]any) *TextureParams {
	return &TextureParams{values: values}
}

// FindFloat returns the float value for name, or def.
func (tp *TextureParams) FindFloat(name string, def float64) float64 {
	switch v := tp.values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// FindBool returns the bool value for name, or def.
func (tp *TextureParams) FindBool(name string, def bool) bool {
	if v, ok := tp.values[name].(bool); ok {
		return v
	}
	return def
}

// FindString returns the string value for name, or def.
func (tp *TextureParams) FindString(name string, def string) string {
	if v, ok := tp.values[name].(string); ok {
		return v
	}
	return def
}

// FindFilename returns the file path for name, or def.
func (tp *TextureParams) FindFilename(name string, def string) string {
	return tp.FindString(name, def)
}
