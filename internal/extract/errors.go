package extract

import "errors"

// ErrUnsupportedFormat indicates the input file extension is not handled.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrUnreadable indicates the input file could not be read or parsed.
var ErrUnreadable = errors.New("cannot read input")

// ErrEmptyInput indicates the input file held no extractable text.
var ErrEmptyInput = errors.New("input holds no text")
