package mock

import (
	"fmt"

	"github.com/etaque/gfs-wind-downloader/auth"
)

// NullDestination implements the Destination interface but discards all
// data, returning placeholder values from its methods.
type NullDestination uint8

func NewNullDestination() NullDestination {
	return NullDestination(0)
}

// CreateUpload returns a fixed upload ID.
func (n NullDestination) CreateUpload(container, object string) (string, error) {
	return "null-upload", nil
}

// UploadPart discards the data and returns a tag derived from the part number.
func (n NullDestination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	return fmt.Sprintf("null-tag-%04d", partNumber), nil
}

// CompleteUpload always returns nil.
func (n NullDestination) CompleteUpload(container, object, uploadID string, parts []auth.CompletedPart) error {
	return nil
}

// AbortUpload always returns nil.
func (n NullDestination) AbortUpload(container, object, uploadID string) error {
	return nil
}

// Ensure that NullDestination implements the Destination interface at compile-time
var _ auth.Destination = NewNullDestination()
