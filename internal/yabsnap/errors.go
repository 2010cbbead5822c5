package yabsnap

import (
	"fmt"
	"strings"
)

// ToolError is a non-zero exit from the external tool. The message carries
// the captured stderr verbatim so the operator sees exactly what the tool
// said.
type ToolError struct {
	Args   []string
	Stderr string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no error output"
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Args, " "), msg)
}

// ParseError means the listing emitted a line we could not understand. The
// whole listing fails; a partially parsed catalog is worse than none.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad list-json line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
