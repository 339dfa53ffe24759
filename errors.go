package level

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned while loading a level matches exactly
// one of these with errors.Is
var (
	ErrFile      = errors.New("file error")
	ErrStructure = errors.New("structure error")
	ErrAsset     = errors.New("asset error")
	ErrRange     = errors.New("range error")
)

// LoadError describes the first failure hit while loading a level.
type LoadError struct {
	Kind error  // one of ErrFile, ErrStructure, ErrAsset, ErrRange
	Path string // file being read when it failed (may be empty)
	Msg  string
	Err  error // underlying cause (if any)
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports if `target` is this error's kind
func (e *LoadError) Is(target error) bool {
	return target == e.Kind
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func fileError(path string, err error) error {
	return &LoadError{Kind: ErrFile, Path: path, Err: err}
}

func structureError(path, msg string) error {
	return &LoadError{Kind: ErrStructure, Path: path, Msg: msg}
}

func assetError(path string, err error) error {
	return &LoadError{Kind: ErrAsset, Path: path, Err: err}
}

func rangeError(path, format string, args ...interface{}) error {
	return &LoadError{Kind: ErrRange, Path: path, Msg: fmt.Sprintf(format, args...)}
}
