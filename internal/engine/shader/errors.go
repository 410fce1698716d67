package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Failure categories. Test with errors.Is against the errors returned by
// Builder.Compile, Builder.Build and Program.RequireAttrib.
var (
	ErrSourceUnavailable = errors.New("shader source unavailable")
	ErrCompilationFailed = errors.New("shader compilation failed")
	ErrLinkFailed        = errors.New("program link failed")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrKindMismatch      = errors.New("GL object kind mismatch")

	ErrVertexStage   = errors.New("vertex stage failed")
	ErrFragmentStage = errors.New("fragment stage failed")
)

// CompileError describes a failed attempt to compile one shader stage.
type CompileError struct {
	Path  string
	Stage Stage
	Kind  error  // ErrSourceUnavailable or ErrCompilationFailed
	Log   string // driver diagnostic, empty when the source never reached the driver
	Err   error  // underlying cause, if any
}

func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s shader %s: %v", e.Stage, e.Path, e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if log := strings.TrimSpace(e.Log); log != "" {
		fmt.Fprintf(&b, ": %s", log)
	}
	return b.String()
}

func (e *CompileError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Step identifies where in the program build a failure happened.
type Step int

const (
	StepVertex Step = iota
	StepFragment
	StepLink
)

func (s Step) String() string {
	switch s {
	case StepVertex:
		return "vertex"
	case StepFragment:
		return "fragment"
	case StepLink:
		return "link"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

func (s Step) sentinel() error {
	switch s {
	case StepVertex:
		return ErrVertexStage
	case StepFragment:
		return ErrFragmentStage
	default:
		return ErrLinkFailed
	}
}

// LinkError describes a failed program build. For StepVertex and StepFragment
// Err holds the *CompileError of that stage; for StepLink Log holds the
// program diagnostic.
type LinkError struct {
	Step Step
	Log  string
	Err  error
}

func (e *LinkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Step.sentinel().Error())
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if log := strings.TrimSpace(e.Log); log != "" {
		fmt.Fprintf(&b, ": %s", log)
	}
	return b.String()
}

func (e *LinkError) Unwrap() []error {
	errs := []error{e.Step.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Diagnostic returns the driver log carried by err, from either a link or a
// compile failure. It returns "" when there is none.
func Diagnostic(err error) string {
	var le *LinkError
	if errors.As(err, &le) && le.Log != "" {
		return le.Log
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Log
	}
	return ""
}
