// Package app runs one mathpaint session: window, shader program, render loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mathpaint/internal/config"
	"github.com/Faultbox/mathpaint/internal/engine/input"
	"github.com/Faultbox/mathpaint/internal/engine/renderer"
	"github.com/Faultbox/mathpaint/internal/engine/screenshot"
	"github.com/Faultbox/mathpaint/internal/engine/shader"
	"github.com/Faultbox/mathpaint/internal/engine/window"
)

// App is a running session.
type App struct {
	config   *config.Config
	log      *zap.Logger
	window   *window.Window
	program  *shader.Program
	renderer *renderer.Renderer
	input    *input.Poller
	shots    *screenshot.Capturer
}

// New opens the window, builds the shader program and prepares the quad.
// On error everything created so far has been torn down.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		config: cfg,
		log:    log,
		input:  input.New(),
		shots:  screenshot.New(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}

	// GL entry points can only be loaded once a context is current
	if err := gl.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("%w: failed to initialize OpenGL: %w", ErrWindow, err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	builder := shader.NewBuilder(shader.GLDriver{}, log.Named("shader"))
	a.program, err = builder.Build(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		logBuildFailure(log, err)
		a.Close()
		return nil, fmt.Errorf("building shader program: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		ClearColor:     cfg.Render.ClearColor,
		PositionAttrib: cfg.Render.PositionAttrib,
		UVAttrib:       cfg.Render.UVAttrib,
	}, a.program, log.Named("renderer"))
	if err != nil {
		log.Error("bad vertex attribute", zap.Error(err))
		a.Close()
		return nil, err
	}

	log.Info("session ready", zap.Uint32("program", a.program.ID()))
	return a, nil
}

// logBuildFailure logs the failing stage and the driver diagnostic.
func logBuildFailure(log *zap.Logger, err error) {
	fields := []zap.Field{zap.Error(err)}

	var le *shader.LinkError
	if errors.As(err, &le) {
		fields = append(fields, zap.Stringer("step", le.Step))
	}
	var ce *shader.CompileError
	if errors.As(err, &ce) {
		fields = append(fields, zap.Stringer("stage", ce.Stage), zap.String("path", ce.Path))
	}
	if diag := shader.Diagnostic(err); diag != "" {
		fields = append(fields, zap.String("log", diag))
	}

	log.Error("failed to build shader program", fields...)
}

// Run drives the event/render loop until the user quits.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting render loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.log.Info("quit requested")
			return nil
		}

		capture := false
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.renderer.Resize(a.window.DrawableSize())
			case input.EventScreenshot:
				capture = true
			}
		}

		if err := a.renderer.Draw(); err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
		if capture {
			a.captureScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) captureScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close tears the session down: quad buffers, program, then window and SDL.
// Safe to call on a partially constructed App and more than once.
func (a *App) Close() {
	a.log.Info("closing session")

	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.program != nil {
		a.program.Release()
		a.program = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
