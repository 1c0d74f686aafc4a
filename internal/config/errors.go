package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("battctl.yml missing in: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("battctl.yml is not a valid yaml document: %v", e.Wrapped)
}

type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("battctl.yml has a missing or invalid property: %s", e.Property)
}

type InvalidRuntimeVersionError struct {
	Value string
}

func (e *InvalidRuntimeVersionError) Error() string {
	return fmt.Sprintf(
		"battctl.yml property python.version has invalid value '%s'. Expected a version like '3.11' or '3.11.4'",
		e.Value,
	)
}

type InvalidLineLengthError struct {
	Value int
}

func (e *InvalidLineLengthError) Error() string {
	return fmt.Sprintf("battctl.yml property formatter.lineLength has invalid value %d", e.Value)
}

type WorkspaceNotFoundError struct {
	Start string
}

func (e *WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf(
		"no battctl workspace found from '%s'. Run 'battctl init <dir>' to create one, "+
			"or set %s", e.Start, WorkspaceEnvVar,
	)
}
