package document

import "fmt"

// OpenError reports an unreadable or corrupt document. It is fatal to the
// open attempt only; a session keeps its previous state.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return fmt.Sprintf("open %s: %v", e.Path, e.Err) }
func (e *OpenError) Unwrap() error { return e.Err }

// RenderError reports a failed page render. Navigation to the page aborts
// and the previously displayed page remains current.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render page %d: %v", e.Page, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// ExtractError reports a single-asset extraction failure. Batch exports
// collect these per asset instead of aborting.
type ExtractError struct {
	Asset AssetID
	Err   error
}

func (e *ExtractError) Error() string { return fmt.Sprintf("extract asset %d: %v", e.Asset, e.Err) }
func (e *ExtractError) Unwrap() error { return e.Err }
