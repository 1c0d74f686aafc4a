package toolchain

import (
	"fmt"
	"strings"
)

type ToolNotFoundError struct {
	Tool string
	Hint string
}

func (e *ToolNotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found", e.Tool)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

type ToolFailedError struct {
	Tool    string
	Output  []byte
	Wrapped error
}

func (e *ToolFailedError) Error() string {
	out := strings.TrimSpace(string(e.Output))
	if out == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Wrapped)
	}
	return fmt.Sprintf("%s failed: %v\n%s", e.Tool, e.Wrapped, out)
}

func (e *ToolFailedError) Unwrap() error {
	return e.Wrapped
}
