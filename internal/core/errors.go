package core

import (
	"errors"
	"fmt"
)

// ErrEmptyOutline is returned when the outline response parses to zero items.
var ErrEmptyOutline = errors.New("outline is empty")

// ErrEmptyResponse is returned when a generation call succeeds with blank text.
var ErrEmptyResponse = errors.New("empty response")

// ErrEmptyTopic is returned when a run is started with a blank topic.
var ErrEmptyTopic = errors.New("topic is empty")

// BackendError wraps a failed generation call.
type BackendError struct {
	Stage string // "outline" or "item"
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// PartialContentError reports the item whose expansion aborted the run.
// Content generated for earlier items is discarded.
type PartialContentError struct {
	Index int
	Item  string
	Err   error
}

func (e *PartialContentError) Error() string {
	return fmt.Sprintf("content for item %d (%q) failed: %v", e.Index+1, e.Item, e.Err)
}

func (e *PartialContentError) Unwrap() error { return e.Err }

// SaveError wraps a failure to persist the finished document.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
