package mock

import (
	"fmt"

	"github.com/etaque/gfs-wind-downloader/auth"
)

// FailAfterDestination implements the Destination interface, accepting
// part uploads until a configured number have succeeded and failing every
// part after that. It is useful for exercising abort-on-failure paths.
type FailAfterDestination struct {
	// SucceedParts is how many UploadPart calls succeed before failures begin.
	SucceedParts int
	PartsSeen    int
	Aborted      bool
	Completed    bool
}

func NewFailAfterDestination(succeedParts int) *FailAfterDestination {
	return &FailAfterDestination{SucceedParts: succeedParts}
}

// CreateUpload returns a fixed upload ID.
func (f *FailAfterDestination) CreateUpload(container, object string) (string, error) {
	return "fail-after-upload", nil
}

// UploadPart succeeds for the first SucceedParts calls, then fails.
func (f *FailAfterDestination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	f.PartsSeen++
	if f.PartsSeen > f.SucceedParts {
		return "", fmt.Errorf("Mock destination rejected part %d", partNumber)
	}
	return fmt.Sprintf("tag-%04d", partNumber), nil
}

// CompleteUpload records that completion was requested.
func (f *FailAfterDestination) CompleteUpload(container, object, uploadID string, parts []auth.CompletedPart) error {
	f.Completed = true
	return nil
}

// AbortUpload records that the upload was aborted.
func (f *FailAfterDestination) AbortUpload(container, object, uploadID string) error {
	f.Aborted = true
	return nil
}

// Ensure that FailAfterDestination implements the Destination interface at compile-time
var _ auth.Destination = &FailAfterDestination{}
