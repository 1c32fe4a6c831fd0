package resolve

import "fmt"

// NotFoundError indicates that a target or README path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// InvalidTargetError indicates that a target exists but is not a regular
// file (directory, device file, socket, ...).
type InvalidTargetError struct {
	Path string
	Mode string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("target is not a regular file: %s (%s)", e.Path, e.Mode)
}

// MissingReadmeError indicates that no README could be located for a target
// and none was given explicitly.
type MissingReadmeError struct {
	Dir string
}

func (e *MissingReadmeError) Error() string {
	return fmt.Sprintf("no README found in %s", e.Dir)
}
