package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Kind is the class of GL object a diagnostic log is attached to.
type Kind int

const (
	KindShader Kind = iota
	KindProgram
)

func (k Kind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FetchLog returns the info log the driver keeps for a shader or program.
//
// The buffer is sized from INFO_LOG_LENGTH, so the log is never truncated and
// never read past its end. A zero length yields "". If id is not an object of
// the given kind, FetchLog returns ErrKindMismatch without querying it.
func FetchLog(drv Driver, id uint32, kind Kind) (string, error) {
	var length int32
	switch kind {
	case KindShader:
		if !drv.IsShader(id) {
			return "", fmt.Errorf("%w: GL ID %d is not a shader", ErrKindMismatch, id)
		}
		length = drv.GetShaderiv(id, gl.INFO_LOG_LENGTH)
	case KindProgram:
		if !drv.IsProgram(id) {
			return "", fmt.Errorf("%w: GL ID %d is not a program", ErrKindMismatch, id)
		}
		length = drv.GetProgramiv(id, gl.INFO_LOG_LENGTH)
	default:
		return "", fmt.Errorf("%w: unknown kind %v", ErrKindMismatch, kind)
	}

	if length <= 0 {
		return "", nil
	}

	buf := make([]byte, length+1)
	var n int32
	if kind == KindShader {
		n = drv.GetShaderInfoLog(id, buf[:length])
	} else {
		n = drv.GetProgramInfoLog(id, buf[:length])
	}
	buf[length] = 0

	n = min(max(n, 0), length)
	return strings.TrimRight(string(buf[:n]), "\x00"), nil
}
