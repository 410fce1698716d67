// Package shader builds OpenGL shader programs from GLSL source files.
//
// A Builder compiles the vertex and fragment stages and links them. Every
// GL object the build creates is released on every failure path, and the
// stage objects are released after a successful link too, so the only
// handle that ever escapes is a linked *Program.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mathpaint/internal/assets"
)

// Stage is a programmable pipeline stage. Values are the GL shader type enums.
type Stage uint32

const (
	Vertex   Stage = gl.VERTEX_SHADER
	Fragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(0x%x)", uint32(s))
	}
}

// Shader is a compiled shader object.
type Shader struct {
	drv   Driver
	id    uint32
	stage Stage
}

// ID returns the GL name, or 0 once released.
func (s *Shader) ID() uint32 { return s.id }

// Stage returns the stage the shader was compiled for.
func (s *Shader) Stage() Stage { return s.stage }

// Release deletes the shader object. Safe to call more than once.
func (s *Shader) Release() {
	if s == nil || s.id == 0 {
		return
	}
	s.drv.DeleteShader(s.id)
	s.id = 0
}

// Program is a linked shader program owned by the caller.
type Program struct {
	drv Driver
	id  uint32
}

// ID returns the GL name, or 0 once released.
func (p *Program) ID() uint32 { return p.id }

// Use makes the program current.
func (p *Program) Use() {
	p.drv.UseProgram(p.id)
}

// AttribLocation returns the location of a vertex attribute.
// It is negative if the linked program has no active attribute of that name.
func (p *Program) AttribLocation(name string) int32 {
	return p.drv.GetAttribLocation(p.id, name)
}

// RequireAttrib returns the location of a vertex attribute, or an error
// wrapping ErrAttributeNotFound if the program does not declare it or the
// linker optimised it out.
func (p *Program) RequireAttrib(name string) (uint32, error) {
	loc := p.AttribLocation(name)
	if loc < 0 {
		return 0, fmt.Errorf("%w: %q in program %d", ErrAttributeNotFound, name, p.id)
	}
	return uint32(loc), nil
}

// Release deletes the program object. Safe to call more than once.
func (p *Program) Release() {
	if p == nil || p.id == 0 {
		return
	}
	p.drv.DeleteProgram(p.id)
	p.id = 0
}

// Builder compiles and links shader programs through a Driver.
type Builder struct {
	drv Driver
	log *zap.Logger
}

// NewBuilder returns a Builder. A nil logger disables logging.
func NewBuilder(drv Driver, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{drv: drv, log: log}
}

// Compile reads the source at path and compiles it as the given stage.
// On failure no shader object is left allocated.
func (b *Builder) Compile(path string, stage Stage) (*Shader, error) {
	src, err := assets.ReadText(path)
	if err != nil {
		return nil, &CompileError{Path: path, Stage: stage, Kind: ErrSourceUnavailable, Err: err}
	}

	id := b.drv.CreateShader(stage)
	if id == 0 {
		return nil, &CompileError{
			Path:  path,
			Stage: stage,
			Kind:  ErrCompilationFailed,
			Err:   errors.New("driver returned no shader object"),
		}
	}

	// The driver keeps its own copy; src is not used past this point.
	b.drv.ShaderSource(id, src)
	b.drv.CompileShader(id)

	if b.drv.GetShaderiv(id, gl.COMPILE_STATUS) == gl.FALSE {
		diag, logErr := FetchLog(b.drv, id, KindShader)
		if logErr != nil {
			b.log.Warn("shader log unavailable", zap.Uint32("shader", id), zap.Error(logErr))
		}
		b.drv.DeleteShader(id)
		return nil, &CompileError{Path: path, Stage: stage, Kind: ErrCompilationFailed, Log: diag}
	}

	b.log.Debug("shader compiled",
		zap.Stringer("stage", stage),
		zap.String("path", path),
		zap.Uint32("shader", id),
	)
	return &Shader{drv: b.drv, id: id, stage: stage}, nil
}

// Build compiles both stages and links them into a program.
//
// Objects are released in reverse order of creation on every exit path.
// After a successful link the stage objects are detached and deleted, so the
// returned program is the only live object.
func (b *Builder) Build(vertexPath, fragmentPath string) (*Program, error) {
	vs, err := b.Compile(vertexPath, Vertex)
	if err != nil {
		return nil, &LinkError{Step: StepVertex, Err: err}
	}
	defer vs.Release()

	fs, err := b.Compile(fragmentPath, Fragment)
	if err != nil {
		return nil, &LinkError{Step: StepFragment, Err: err}
	}
	defer fs.Release()

	id := b.drv.CreateProgram()
	if id == 0 {
		return nil, &LinkError{Step: StepLink, Err: errors.New("driver returned no program object")}
	}
	b.drv.AttachShader(id, vs.id)
	b.drv.AttachShader(id, fs.id)
	b.drv.LinkProgram(id)

	linked := b.drv.GetProgramiv(id, gl.LINK_STATUS) != gl.FALSE
	var diag string
	if !linked {
		var logErr error
		diag, logErr = FetchLog(b.drv, id, KindProgram)
		if logErr != nil {
			b.log.Warn("program log unavailable", zap.Uint32("program", id), zap.Error(logErr))
		}
	}

	b.drv.DetachShader(id, vs.id)
	b.drv.DetachShader(id, fs.id)

	if !linked {
		b.drv.DeleteProgram(id)
		return nil, &LinkError{Step: StepLink, Log: diag}
	}

	b.log.Debug("program linked",
		zap.Uint32("program", id),
		zap.String("vertex", vertexPath),
		zap.String("fragment", fragmentPath),
	)
	return &Program{drv: b.drv, id: id}, nil
}
