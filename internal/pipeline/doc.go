// Package pipeline rewrites generically rendered HTML into the final
// semantic résumé markup.
//
// The pipeline is an ordered list of pure passes. Each pass is a function
// from fragment to fragment; Run folds the fragment through the list left
// to right. The order is a hard invariant: later passes assume earlier
// ones already ran (block restructuring before paragraph cleanup, tuple
// consumption before the date-merge repair, contact restructuring before
// the global icon pass).
//
// Passes that rebuild macro markers consume argument tuples positionally
// through per-macro cursors. A marker with no remaining tuple is left
// untouched: a source/render desync degrades the output instead of
// failing the conversion.
package pipeline
