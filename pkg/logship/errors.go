package logship

import "errors"

// ErrInvalidConfig indicates the configuration failed validation.
// Errors returned by Config.Validate and New wrap this sentinel.
var ErrInvalidConfig = errors.New("logship: invalid configuration")
