package tex2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource    = errors.New("latex source cannot be empty")
	ErrRender         = errors.New("rendering latex failed")
	ErrWrapDocument   = errors.New("wrapping document failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
