package mock

import (
	"fmt"

	"github.com/etaque/gfs-wind-downloader/auth"
)

// ErrorDestination implements the Destination interface but always returns
// the error values of its methods.
type ErrorDestination struct{}

func NewErrorDestination() ErrorDestination {
	return ErrorDestination{}
}

// CreateUpload always returns an error.
func (e ErrorDestination) CreateUpload(container, object string) (string, error) {
	return "", fmt.Errorf("Mock destination refused to create upload")
}

// UploadPart always returns an error.
func (e ErrorDestination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	return "", fmt.Errorf("Mock destination refused part %d", partNumber)
}

// CompleteUpload always returns an error.
func (e ErrorDestination) CompleteUpload(container, object, uploadID string, parts []auth.CompletedPart) error {
	return fmt.Errorf("Mock destination refused to complete upload")
}

// AbortUpload always returns an error.
func (e ErrorDestination) AbortUpload(container, object, uploadID string) error {
	return fmt.Errorf("Mock destination refused to abort upload")
}

// Ensure that ErrorDestination implements the Destination interface at compile-time
var _ auth.Destination = ErrorDestination{}
