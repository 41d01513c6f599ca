package gltf

// Check checks that the indices f refers to are in range and that the
// accessors it declares are well formed.
func (f *GLTF) Check() error {
	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return newErr("invalid GLTF.Scene index")
	}
	for _, s := range f.Scenes {
		for _, n := range s.Nodes {
			if n < 0 || n >= int64(len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
		}
	}
	for _, n := range f.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= int64(len(f.Nodes)) {
				return newErr("invalid Node.Children index")
			}
		}
		if n.Mesh != nil && (*n.Mesh < 0 || *n.Mesh >= int64(len(f.Meshes))) {
			return newErr("invalid Node.Mesh index")
		}
	}
	for _, m := range f.Meshes {
		for _, p := range m.Primitives {
			if p.Material != nil && (*p.Material < 0 || *p.Material >= int64(len(f.Materials))) {
				return newErr("invalid Primitive.Material index")
			}
			if p.Indices != nil && (*p.Indices < 0 || *p.Indices >= int64(len(f.Accessors))) {
				return newErr("invalid Primitive.Indices index")
			}
			for _, a := range p.Attributes {
				if a < 0 || a >= int64(len(f.Accessors)) {
					return newErr("invalid Primitive.Attributes index")
				}
			}
		}
	}
	for _, v := range f.BufferViews {
		if v.Buffer < 0 || v.Buffer >= int64(len(f.Buffers)) {
			return newErr("invalid BufferView.Buffer index")
		}
		if v.ByteOffset < 0 {
			return newErr("invalid BufferView.ByteOffset value")
		}
		if v.ByteLength < 1 {
			return newErr("invalid BufferView.ByteLength value")
		}
		if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252) {
			return newErr("invalid BufferView.ByteStride value")
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	return nil
}

// Check checks that a is a valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil {
		idx := *a.BufferView
		if idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return newErr("invalid Accessor.BufferView index")
		}
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	switch a.ComponentType {
	case BYTE, UNSIGNED_BYTE, SHORT, UNSIGNED_SHORT, UNSIGNED_INT, FLOAT:
	default:
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 || a.Count > maxCount {
		return newErr("invalid Accessor.Count value")
	}
	switch a.Type {
	case SCALAR, VEC2, VEC3, VEC4, MAT4:
	default:
		return newErr("invalid Accessor.Type value")
	}
	return nil
}
