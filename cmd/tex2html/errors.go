package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input files")
	ErrReadSource     = errors.New("failed to read latex source")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrBatchFailed    = errors.New("one or more conversions failed")
	ErrInvalidTimeout = errors.New("invalid timeout value")
)
