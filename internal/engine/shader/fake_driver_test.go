package shader

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mathpaint/internal/assets"
)

// Markers recognised by fakeDriver in shader sources.
const (
	markCompileError = "#error"
	markLinkError    = "// link: unresolved"
)

type fakeObject struct {
	kind     Kind
	stage    Stage
	source   string
	status   int32
	log      string
	attached map[uint32]bool
}

// fakeDriver is an in-memory Driver that tracks every object it hands out.
type fakeDriver struct {
	nextID  uint32
	objects map[uint32]*fakeObject
	calls   []string
	misuse  []string

	// failCreate makes CreateShader and CreateProgram return 0.
	failCreate bool
	// logLength overrides INFO_LOG_LENGTH when non-nil.
	logLength *int32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{nextID: 1, objects: make(map[uint32]*fakeObject)}
}

func (d *fakeDriver) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDriver) bad(format string, args ...any) {
	d.misuse = append(d.misuse, fmt.Sprintf(format, args...))
}

func (d *fakeDriver) alloc(o *fakeObject) uint32 {
	id := d.nextID
	d.nextID++
	d.objects[id] = o
	return id
}

func (d *fakeDriver) get(id uint32, kind Kind) *fakeObject {
	o, ok := d.objects[id]
	if !ok || o.kind != kind {
		return nil
	}
	return o
}

func (d *fakeDriver) live(kind Kind) int {
	n := 0
	for _, o := range d.objects {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (d *fakeDriver) count(prefix string) int {
	n := 0
	for _, c := range d.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (d *fakeDriver) index(call string) int {
	for i, c := range d.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (d *fakeDriver) CreateShader(stage Stage) uint32 {
	d.record("CreateShader %v", stage)
	if d.failCreate {
		return 0
	}
	return d.alloc(&fakeObject{kind: KindShader, stage: stage})
}

func (d *fakeDriver) ShaderSource(shader uint32, source assets.Text) {
	d.record("ShaderSource %d", shader)
	o := d.get(shader, KindShader)
	if o == nil {
		d.bad("ShaderSource on non-shader %d", shader)
		return
	}
	if len(source) == 0 || source[len(source)-1] != 0 {
		d.bad("ShaderSource %d: source not NUL-terminated", shader)
	}
	o.source = string(bytes.TrimRight(source, "\x00"))
}

func (d *fakeDriver) CompileShader(shader uint32) {
	d.record("CompileShader %d", shader)
	o := d.get(shader, KindShader)
	if o == nil {
		d.bad("CompileShader on non-shader %d", shader)
		return
	}
	if strings.Contains(o.source, markCompileError) || strings.TrimSpace(o.source) == "" {
		o.status = gl.FALSE
		o.log = "0:1(1): error: syntax error, unexpected IDENTIFIER"
		return
	}
	o.status = gl.TRUE
}

func (d *fakeDriver) logLen(o *fakeObject) int32 {
	if d.logLength != nil {
		return *d.logLength
	}
	if o.log == "" {
		return 0
	}
	return int32(len(o.log) + 1)
}

func (d *fakeDriver) GetShaderiv(shader uint32, pname uint32) int32 {
	d.record("GetShaderiv %d 0x%x", shader, pname)
	o := d.get(shader, KindShader)
	if o == nil {
		d.bad("GetShaderiv on non-shader %d", shader)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return o.status
	case gl.INFO_LOG_LENGTH:
		return d.logLen(o)
	}
	return 0
}

// writeLog mimics glGet*InfoLog: at most len(buf)-1 characters plus a NUL.
func writeLog(log string, buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], log)
	buf[n] = 0
	return int32(n)
}

func (d *fakeDriver) GetShaderInfoLog(shader uint32, buf []byte) int32 {
	d.record("GetShaderInfoLog %d", shader)
	o := d.get(shader, KindShader)
	if o == nil {
		d.bad("GetShaderInfoLog on non-shader %d", shader)
		return 0
	}
	return writeLog(o.log, buf)
}

func (d *fakeDriver) IsShader(id uint32) bool {
	return d.get(id, KindShader) != nil
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	d.record("DeleteShader %d", shader)
	if d.get(shader, KindShader) == nil {
		d.bad("DeleteShader on non-shader %d", shader)
		return
	}
	for _, o := range d.objects {
		if o.kind == KindProgram && o.attached[shader] {
			d.bad("DeleteShader %d while still attached", shader)
		}
	}
	delete(d.objects, shader)
}

func (d *fakeDriver) CreateProgram() uint32 {
	d.record("CreateProgram")
	if d.failCreate {
		return 0
	}
	return d.alloc(&fakeObject{kind: KindProgram, attached: make(map[uint32]bool)})
}

func (d *fakeDriver) AttachShader(program, shader uint32) {
	d.record("AttachShader %d %d", program, shader)
	p := d.get(program, KindProgram)
	if p == nil || d.get(shader, KindShader) == nil {
		d.bad("AttachShader %d %d on invalid object", program, shader)
		return
	}
	p.attached[shader] = true
}

func (d *fakeDriver) DetachShader(program, shader uint32) {
	d.record("DetachShader %d %d", program, shader)
	p := d.get(program, KindProgram)
	if p == nil {
		d.bad("DetachShader on non-program %d", program)
		return
	}
	if !p.attached[shader] {
		d.bad("DetachShader %d %d not attached", program, shader)
	}
	delete(p.attached, shader)
}

func (d *fakeDriver) LinkProgram(program uint32) {
	d.record("LinkProgram %d", program)
	p := d.get(program, KindProgram)
	if p == nil {
		d.bad("LinkProgram on non-program %d", program)
		return
	}

	var stages []Stage
	p.status = gl.TRUE
	for id := range p.attached {
		s := d.get(id, KindShader)
		if s.status != gl.TRUE {
			p.status = gl.FALSE
			p.log = "error: attached shader is not compiled"
		}
		if strings.Contains(s.source, markLinkError) {
			p.status = gl.FALSE
			p.log = "error: fragment shader input `uv' has no matching vertex shader output"
		}
		stages = append(stages, s.stage)
	}
	if len(stages) != 2 {
		p.status = gl.FALSE
		p.log = "error: program needs a vertex and a fragment shader"
	}
	if p.status == gl.TRUE {
		for id := range p.attached {
			if s := d.get(id, KindShader); s.stage == Vertex {
				p.source = s.source
			}
		}
	}
}

func (d *fakeDriver) GetProgramiv(program uint32, pname uint32) int32 {
	d.record("GetProgramiv %d 0x%x", program, pname)
	p := d.get(program, KindProgram)
	if p == nil {
		d.bad("GetProgramiv on non-program %d", program)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return p.status
	case gl.INFO_LOG_LENGTH:
		return d.logLen(p)
	}
	return 0
}

func (d *fakeDriver) GetProgramInfoLog(program uint32, buf []byte) int32 {
	d.record("GetProgramInfoLog %d", program)
	p := d.get(program, KindProgram)
	if p == nil {
		d.bad("GetProgramInfoLog on non-program %d", program)
		return 0
	}
	return writeLog(p.log, buf)
}

func (d *fakeDriver) IsProgram(id uint32) bool {
	return d.get(id, KindProgram) != nil
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	d.record("DeleteProgram %d", program)
	if d.get(program, KindProgram) == nil {
		d.bad("DeleteProgram on non-program %d", program)
		return
	}
	delete(d.objects, program)
}

func (d *fakeDriver) UseProgram(program uint32) {
	d.record("UseProgram %d", program)
}

var attribDecl = regexp.MustCompile(`\bin\s+\w+\s+(\w+)\s*;`)

// GetAttribLocation resolves the "in" declarations of the linked vertex
// source in declaration order.
func (d *fakeDriver) GetAttribLocation(program uint32, name string) int32 {
	d.record("GetAttribLocation %d %s", program, name)
	p := d.get(program, KindProgram)
	if p == nil || p.status != gl.TRUE {
		return -1
	}
	for i, m := range attribDecl.FindAllStringSubmatch(p.source, -1) {
		if m[1] == name {
			return int32(i)
		}
	}
	return -1
}
