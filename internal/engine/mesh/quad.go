// Package mesh builds and uploads the canvas quad.
package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexCount is the number of vertices drawn as a triangle fan.
const VertexCount = 4

// Quad is a square canvas in normalized device coordinates, corrected for
// the window aspect ratio so it is never stretched.
type Quad struct {
	Positions [VertexCount]mgl32.Vec2
	UVs       [VertexCount]mgl32.Vec2
}

// FitQuad returns the largest square quad that fits a width x height
// viewport. Corners run counter-clockwise from bottom-left.
func FitQuad(width, height int) Quad {
	x, y := float32(1), float32(1)
	if width > 0 && height > 0 {
		if width < height {
			y = float32(width) / float32(height)
		} else {
			x = float32(height) / float32(width)
		}
	}

	return Quad{
		Positions: [VertexCount]mgl32.Vec2{
			{-x, -y},
			{x, -y},
			{x, y},
			{-x, y},
		},
		UVs: [VertexCount]mgl32.Vec2{
			{0, 0},
			{1, 0},
			{1, 1},
			{0, 1},
		},
	}
}

// PositionData returns positions as packed x, y pairs.
func (q Quad) PositionData() []float32 {
	return flatten(q.Positions)
}

// UVData returns texture coordinates as packed u, v pairs.
func (q Quad) UVData() []float32 {
	return flatten(q.UVs)
}

func flatten(v [VertexCount]mgl32.Vec2) []float32 {
	out := make([]float32, 0, 2*VertexCount)
	for _, p := range v {
		out = append(out, p.X(), p.Y())
	}
	return out
}

// Buffers holds the GPU copy of a Quad: one VAO and one VBO per attribute.
type Buffers struct {
	vao         uint32
	positionVBO uint32
	uvVBO       uint32
}

// Upload creates the vertex array for q and binds positions and UVs to the
// given attribute locations. A GL context must be current.
func Upload(q Quad, positionLoc, uvLoc uint32) *Buffers {
	b := &Buffers{}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	b.positionVBO = uploadAttrib(q.PositionData(), positionLoc, gl.DYNAMIC_DRAW)
	b.uvVBO = uploadAttrib(q.UVData(), uvLoc, gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func uploadAttrib(data []float32, loc uint32, usage uint32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), usage)
	gl.VertexAttribPointer(loc, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

// UpdatePositions replaces the vertex positions, e.g. after a resize.
func (b *Buffers) UpdatePositions(q Quad) {
	data := q.PositionData()
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positionVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw issues the draw call. The caller makes the program current first.
func (b *Buffers) Draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, VertexCount)
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers. Safe to call more than once.
func (b *Buffers) Delete() {
	if b.uvVBO != 0 {
		gl.DeleteBuffers(1, &b.uvVBO)
		b.uvVBO = 0
	}
	if b.positionVBO != 0 {
		gl.DeleteBuffers(1, &b.positionVBO)
		b.positionVBO = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}
