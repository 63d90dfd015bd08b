package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors for theme directories without an
	// index file.
	ErrNotFound = errors.New("no " + IndexFile)

	// ErrParse is matched by errors for index files that exist but cannot be
	// decoded.
	ErrParse = errors.New("malformed " + IndexFile)
)

// NotFoundError is returned by Load when Dir has no index file and
// synthesis was not requested.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s in %s", IndexFile, e.Dir)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError wraps the underlying ini error for a malformed index file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
