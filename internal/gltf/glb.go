package gltf

import (
	"bytes"
	"encoding/binary"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk header.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942

	headerSize = 12
	chunkSize  = 8
)

// IsGLB returns whether data starts with a binary glTF (version 2) header.
func IsGLB(data []byte) bool {
	if len(data) < headerSize {
		return false
	}
	var h glbHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, h[:]); err != nil {
		return false
	}
	return h[headerMagic] == magic && h[headerVersion] == 2
}

// SplitGLB returns the JSON chunk and the optional BIN chunk of a GLB blob.
// The returned slices alias data.
func SplitGLB(data []byte) (doc, bin []byte, err error) {
	if !IsGLB(data) {
		return nil, nil, ErrNotGLB
	}
	total := int(binary.LittleEndian.Uint32(data[4*headerLength:]))
	if total > len(data) {
		return nil, nil, newErr("truncated GLB blob")
	}
	off := headerSize
	for off+chunkSize <= total {
		var c glbChunk
		c[chunkLength] = binary.LittleEndian.Uint32(data[off:])
		c[chunkType] = binary.LittleEndian.Uint32(data[off+4:])
		start := off + chunkSize
		end := start + int(c[chunkLength])
		if end > total || end < start {
			return nil, nil, newErr("invalid GLB chunk")
		}
		switch c[chunkType] {
		case typeJSON:
			if doc == nil {
				doc = data[start:end]
			}
		case typeBIN:
			if bin == nil {
				bin = data[start:end]
			}
		}
		off = end
	}
	if len(doc) == 0 {
		return nil, nil, newErr("GLB blob has no JSON chunk")
	}
	return doc, bin, nil
}

// WriteGLB writes doc and bin as a GLB blob. bin may be empty.
func WriteGLB(w io.Writer, doc, bin []byte) error {
	jsonPad := pad4(len(doc))
	binPad := pad4(len(bin))
	total := headerSize + chunkSize + len(doc) + jsonPad
	if len(bin) > 0 {
		total += chunkSize + len(bin) + binPad
	}
	var buf bytes.Buffer
	buf.Grow(total)
	write := func(v ...uint32) {
		for _, x := range v {
			_ = binary.Write(&buf, binary.LittleEndian, x)
		}
	}
	write(magic, 2, uint32(total))
	write(uint32(len(doc)+jsonPad), typeJSON)
	buf.Write(doc)
	buf.Write(bytes.Repeat([]byte{' '}, jsonPad))
	if len(bin) > 0 {
		write(uint32(len(bin)+binPad), typeBIN)
		buf.Write(bin)
		buf.Write(make([]byte, binPad))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func pad4(n int) int {
	return (4 - n%4) % 4
}
