package gltf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxCount bounds the element count of a single accessor.
const maxCount = 1 << 24

func componentSize(ct int64) int {
	switch ct {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case UNSIGNED_INT, FLOAT:
		return 4
	}
	return 0
}

func componentCount(typ string) int {
	switch typ {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4:
		return 4
	case MAT4:
		return 16
	}
	return 0
}

// view returns the bytes backing accessor a along with the distance in bytes
// between consecutive elements. A nil slice means the accessor has no
// buffer view and its elements are all zero.
func (f *GLTF) view(a *Accessor, buffers [][]byte) (data []byte, stride int, err error) {
	elem := componentSize(a.ComponentType) * componentCount(a.Type)
	if a.BufferView == nil {
		return nil, elem, nil
	}
	bv := f.BufferViews[*a.BufferView]
	buf := buffers[bv.Buffer]
	size := int64(len(buf))
	start, length := bv.ByteOffset, bv.ByteLength
	if start < 0 || length < 0 || start > size || length > size-start {
		return nil, 0, newErr(fmt.Sprintf("buffer view %d out of range", *a.BufferView))
	}
	data = buf[start : start+length]
	stride = elem
	if bv.ByteStride > 0 {
		stride = int(bv.ByteStride)
	}
	if a.ByteOffset < 0 || a.Count < 1 || a.ByteOffset > int64(len(data)) ||
		(a.Count-1) > (int64(len(data))-a.ByteOffset)/int64(stride) {
		return nil, 0, newErr(fmt.Sprintf("accessor %q overruns its buffer view", a.Name))
	}
	need := int(a.ByteOffset) + stride*int(a.Count-1) + elem
	if need > len(data) {
		return nil, 0, newErr(fmt.Sprintf("accessor %q overruns its buffer view", a.Name))
	}
	return data[a.ByteOffset:], stride, nil
}

// readVec3 reads a FLOAT VEC3 accessor such as POSITION.
func (f *GLTF) readVec3(idx int64, buffers [][]byte) ([]mgl32.Vec3, error) {
	a := &f.Accessors[idx]
	if a.Type != VEC3 || a.ComponentType != FLOAT {
		return nil, newErr(fmt.Sprintf("accessor %d: want FLOAT VEC3, have %d %s", idx, a.ComponentType, a.Type))
	}
	data, stride, err := f.view(a, buffers)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec3, a.Count)
	if data == nil {
		return out, nil
	}
	for i := range out {
		o := i * stride
		for k := 0; k < 3; k++ {
			bits := binary.LittleEndian.Uint32(data[o+4*k:])
			out[i][k] = math.Float32frombits(bits)
		}
	}
	return out, nil
}

// readIndices reads an unsigned SCALAR accessor used as primitive indices.
func (f *GLTF) readIndices(idx int64, buffers [][]byte) ([]uint32, error) {
	a := &f.Accessors[idx]
	if a.Type != SCALAR {
		return nil, newErr(fmt.Sprintf("accessor %d: indices must be SCALAR", idx))
	}
	data, stride, err := f.view(a, buffers)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, a.Count)
	if data == nil {
		return out, nil
	}
	for i := range out {
		o := i * stride
		switch a.ComponentType {
		case UNSIGNED_BYTE:
			out[i] = uint32(data[o])
		case UNSIGNED_SHORT:
			out[i] = uint32(binary.LittleEndian.Uint16(data[o:]))
		case UNSIGNED_INT:
			out[i] = binary.LittleEndian.Uint32(data[o:])
		default:
			return nil, newErr(fmt.Sprintf("accessor %d: invalid index component type %d", idx, a.ComponentType))
		}
	}
	return out, nil
}

// triangulate converts strip and fan index lists into a plain triangle list.
func triangulate(mode int64, idx []uint32) ([]uint32, bool) {
	switch mode {
	case TRIANGLES:
		return idx[:len(idx)/3*3], true
	case TRIANGLE_STRIP:
		var out []uint32
		for i := 2; i < len(idx); i++ {
			if i%2 == 0 {
				out = append(out, idx[i-2], idx[i-1], idx[i])
			} else {
				out = append(out, idx[i-1], idx[i-2], idx[i])
			}
		}
		return out, true
	case TRIANGLE_FAN:
		var out []uint32
		for i := 2; i < len(idx); i++ {
			out = append(out, idx[0], idx[i-1], idx[i])
		}
		return out, true
	}
	return nil, false
}
