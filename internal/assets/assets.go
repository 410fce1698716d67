// Package assets loads text assets (shader sources) from disk.
package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnreadable is returned when a file cannot be opened, sized or read in full.
var ErrUnreadable = errors.New("file unreadable")

// Text is an owned file buffer terminated by a single NUL byte.
type Text []byte

// Len returns the content length, excluding the terminator.
func (t Text) Len() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// String returns the content without the terminator.
func (t Text) String() string {
	return string(t[:t.Len()])
}

// ReadText reads the whole file at path into a buffer sized to the file's
// byte length at the time of reading, plus the terminator.
// Any I/O failure fails the whole read; no partial content is returned.
func ReadText(path string) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrUnreadable, path)
	}

	size := info.Size()
	buf := make(Text, size+1)
	if _, err := io.ReadFull(f, buf[:size]); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnreadable, path, err)
	}
	buf[size] = 0

	return buf, nil
}
