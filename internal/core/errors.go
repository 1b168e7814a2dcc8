package core

import "errors"

// ErrEmptyInput is the only pipeline error that may reach the service
// boundary; everything else degrades to a typed fallback value.
var ErrEmptyInput = errors.New("empty input")
