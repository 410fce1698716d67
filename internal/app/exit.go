package app

import (
	"errors"

	"github.com/Faultbox/mathpaint/internal/engine/shader"
)

// Process exit codes, one per failure category.
const (
	ExitOK                = 0
	ExitConfig            = 1
	ExitWindow            = 2
	ExitSourceUnavailable = 3
	ExitCompileFailed     = 4
	ExitLinkFailed        = 5
	ExitAttributeNotFound = 6
	ExitRender            = 7
)

var (
	// ErrWindow marks failures creating the window, the GL context or
	// loading GL entry points.
	ErrWindow = errors.New("graphics setup failed")
	// ErrRender marks failures inside the render loop.
	ErrRender = errors.New("render failed")
)

// ExitCode maps an error from New or Run to a process exit code.
// Errors outside the known categories map to ExitConfig.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, shader.ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, shader.ErrCompilationFailed):
		return ExitCompileFailed
	case errors.Is(err, shader.ErrLinkFailed):
		return ExitLinkFailed
	case errors.Is(err, shader.ErrAttributeNotFound):
		return ExitAttributeNotFound
	case errors.Is(err, ErrWindow):
		return ExitWindow
	case errors.Is(err, ErrRender):
		return ExitRender
	default:
		return ExitConfig
	}
}
