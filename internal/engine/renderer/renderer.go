// Package renderer draws the canvas quad with the session's shader program.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mathpaint/internal/engine/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// ClearColor is RGBA in [0, 1].
	ClearColor [4]float32
	// PositionAttrib and UVAttrib name the vertex inputs of the program.
	PositionAttrib string
	UVAttrib       string
}

// Program is the part of a linked shader program the renderer needs.
type Program interface {
	Use()
	RequireAttrib(name string) (uint32, error)
}

// Renderer owns the quad buffers. It does not own the program.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program Program
	quad    *mesh.Buffers

	positionLoc uint32
	uvLoc       uint32
}

// Locations resolves the position and UV attribute locations in prog.
// A missing attribute is returned as the program's lookup error, wrapped.
func Locations(prog Program, positionName, uvName string) (position, uv uint32, err error) {
	position, err = prog.RequireAttrib(positionName)
	if err != nil {
		return 0, 0, fmt.Errorf("position attribute: %w", err)
	}
	uv, err = prog.RequireAttrib(uvName)
	if err != nil {
		return 0, 0, fmt.Errorf("uv attribute: %w", err)
	}
	return position, uv, nil
}

// New resolves the program's attributes and uploads the quad.
// A GL context must be current and gl.Init must have succeeded.
func New(cfg Config, prog Program, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	posLoc, uvLoc, err := Locations(prog, cfg.PositionAttrib, cfg.UVAttrib)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		config:      cfg,
		log:         log,
		program:     prog,
		positionLoc: posLoc,
		uvLoc:       uvLoc,
	}

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.quad = mesh.Upload(mesh.FitQuad(cfg.Width, cfg.Height), posLoc, uvLoc)

	log.Debug("renderer ready",
		zap.String("position_attrib", cfg.PositionAttrib),
		zap.Uint32("position_loc", posLoc),
		zap.String("uv_attrib", cfg.UVAttrib),
		zap.Uint32("uv_loc", uvLoc),
	)
	return r, nil
}

// Close deletes the quad buffers.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.quad != nil {
		r.quad.Delete()
	}
}

// Resize updates the viewport and refits the quad to the new aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.quad.UpdatePositions(mesh.FitQuad(width, height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the frame and draws the quad. It reports any GL error raised
// while drawing.
func (r *Renderer) Draw() error {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.program.Use()
	r.quad.Draw()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x during draw", code)
	}
	return nil
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
