package upload

import (
	"errors"
	"fmt"
)

// errSessionConsumed reports a terminal call on an upload session that has
// already been finalized or aborted.
var errSessionConsumed = errors.New("upload session has already been finalized or aborted")

// InitiationError reports that no upload session could be obtained from
// the remote store.
type InitiationError struct {
	Container string
	Object    string
	Err       error
}

func (e *InitiationError) Error() string {
	return fmt.Sprintf("Failed to initiate upload for %s/%s: %s", e.Container, e.Object, e.Err)
}

func (e *InitiationError) Unwrap() error {
	return e.Err
}

// PartUploadError reports that the remote store rejected a part or
// returned no completion tag for it. The session is still open; the
// caller is expected to abort it.
type PartUploadError struct {
	Container  string
	Object     string
	PartNumber int
	Err        error
}

func (e *PartUploadError) Error() string {
	return fmt.Sprintf("Failed to upload part %d of %s/%s: %s", e.PartNumber, e.Container, e.Object, e.Err)
}

func (e *PartUploadError) Unwrap() error {
	return e.Err
}

// FinalizeError reports that the remote store rejected the completion
// request. The session is still open; the caller is expected to abort it.
type FinalizeError struct {
	Container string
	Object    string
	Err       error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("Failed to finalize upload of %s/%s: %s", e.Container, e.Object, e.Err)
}

func (e *FinalizeError) Unwrap() error {
	return e.Err
}

// AbortError reports that the remote store rejected the cancellation
// request. Aborts are best-effort; this error is typically logged rather
// than escalated.
type AbortError struct {
	Container string
	Object    string
	Err       error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("Failed to abort upload of %s/%s: %s", e.Container, e.Object, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
