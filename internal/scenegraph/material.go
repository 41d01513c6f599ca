package scenegraph

import (
	"github.com/jinzhu/copier"
)

// Material describes how a mesh node is shaded.
// A nil Color means the material is not color-bearing: it can still be
// drawn but it cannot be tinted.
type Material struct {
	Name        string
	Color       *Color
	Opacity     float32
	Metallic    float32
	Roughness   float32
	DoubleSided bool

	// Texture is the index of the base color texture in the source asset,
	// or -1 when there is none.
	Texture int

	// Extras holds application-specific data carried over from the asset.
	Extras map[string]any
}

// NewMaterial returns an opaque color-bearing material.
func NewMaterial(name string, c Color) *Material {
	return &Material{
		Name:      name,
		Color:     &c,
		Opacity:   1,
		Metallic:  1,
		Roughness: 1,
		Texture:   -1,
	}
}

// HasColor reports whether m is non-nil and color-bearing.
func (m *Material) HasColor() bool {
	return m != nil && m.Color != nil
}

// SetColor overwrites the live color. It does nothing on a material that is
// not color-bearing.
func (m *Material) SetColor(c Color) {
	if !m.HasColor() {
		return
	}
	*m.Color = c
}

// Clone returns a deep copy of m sharing no pointers or maps with it.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	out := new(Material)
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen here.
		panic("scenegraph: material copy: " + err.Error())
	}
	return out
}
