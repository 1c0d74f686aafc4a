package dataset

import (
	"fmt"
)

type InvalidCycleFileError struct {
	Path    string
	Wrapped error
}

func (e *InvalidCycleFileError) Error() string {
	return fmt.Sprintf("invalid cycle file %s: %v", e.Path, e.Wrapped)
}

func (e *InvalidCycleFileError) Unwrap() error {
	return e.Wrapped
}

type EmptyDatasetError struct {
	DataRoot string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no battery cycles loaded from: %s", e.DataRoot)
}
