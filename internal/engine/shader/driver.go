package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mathpaint/internal/assets"
)

// Driver is the part of the OpenGL API the build pipeline talks to.
// Every call requires a current GL context on the calling thread.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source assets.Text)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	// GetShaderInfoLog writes at most len(buf) bytes, including a NUL, and
	// returns the number of bytes written excluding the NUL.
	GetShaderInfoLog(shader uint32, buf []byte) int32
	IsShader(id uint32) bool
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	// GetProgramInfoLog has the same contract as GetShaderInfoLog.
	GetProgramInfoLog(program uint32, buf []byte) int32
	IsProgram(id uint32) bool
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetAttribLocation(program uint32, name string) int32
}

// GLDriver implements Driver on top of go-gl. gl.Init must have succeeded.
type GLDriver struct{}

func (GLDriver) CreateShader(stage Stage) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (GLDriver) ShaderSource(shader uint32, source assets.Text) {
	src := string(source)
	if len(source) == 0 || source[len(source)-1] != 0 {
		src += "\x00"
	}
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GLDriver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (GLDriver) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (GLDriver) GetShaderInfoLog(shader uint32, buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetShaderInfoLog(shader, int32(len(buf)), &n, &buf[0])
	return n
}

func (GLDriver) IsShader(id uint32) bool {
	return gl.IsShader(id)
}

func (GLDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (GLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GLDriver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (GLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (GLDriver) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (GLDriver) GetProgramInfoLog(program uint32, buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetProgramInfoLog(program, int32(len(buf)), &n, &buf[0])
	return n
}

func (GLDriver) IsProgram(id uint32) bool {
	return gl.IsProgram(id)
}

func (GLDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (GLDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (GLDriver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}
