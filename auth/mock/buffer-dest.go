package mock

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/mattetti/filebuffer"

	"github.com/etaque/gfs-wind-downloader/auth"
)

// BufferDestination implements the Destination interface and keeps the
// observed containers, objects, part data, and completion calls for later
// retrieval and testing.
type BufferDestination struct {
	Containers map[string][]string
	// FileContent accumulates the bytes of every uploaded part in
	// upload order, which equals object order when parts are numbered
	// contiguously.
	FileContent *filebuffer.Buffer
	// PartSizes records the length of each uploaded part in upload order.
	PartSizes []int
	// CompletedParts holds the part list passed to CompleteUpload.
	CompletedParts []auth.CompletedPart
	Completed      bool
	Aborted        bool
}

// NewBufferDestination creates a new instance of BufferDestination
func NewBufferDestination() *BufferDestination {
	return &BufferDestination{
		Containers:  make(map[string][]string),
		FileContent: filebuffer.New(nil),
	}
}

// stringInRange returns true when the collection already contains
// the provided string, and false otherwise.
func stringInRange(collection []string, str string) bool {
	for _, current := range collection {
		if current == str {
			return true
		}
	}
	return false
}

// handleContainerAndObject creates the container if it doesn't already exist and
// adds the given object to it, if it doesn't already exist.
func (b *BufferDestination) handleContainerAndObject(container, object string) {
	collection := b.Containers[container]
	if !stringInRange(collection, object) {
		b.Containers[container] = append(collection, object)
	}
}

// CreateUpload records the target and returns a fixed upload ID.
func (b *BufferDestination) CreateUpload(container, object string) (string, error) {
	b.handleContainerAndObject(container, object)
	return "mock-upload-0001", nil
}

// UploadPart appends the part's bytes to the FileContent buffer and returns
// the md5 of the part as its completion tag.
func (b *BufferDestination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	segment := fmt.Sprintf("%s/%s/%08d", object, uploadID, partNumber)
	b.handleContainerAndObject(container, segment)
	// Append at the end, then rewind so that Bytes() exposes the whole
	// accumulated content (filebuffer's Bytes returns from the current
	// index onward).
	if _, err := b.FileContent.Seek(0, io.SeekEnd); err != nil {
		return "", err
	}
	if _, err := b.FileContent.Write(data); err != nil {
		return "", err
	}
	if _, err := b.FileContent.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	b.PartSizes = append(b.PartSizes, len(data))
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// CompleteUpload records the completed part list for inspection.
func (b *BufferDestination) CompleteUpload(container, object, uploadID string, parts []auth.CompletedPart) error {
	b.CompletedParts = append([]auth.CompletedPart{}, parts...)
	b.Completed = true
	return nil
}

// AbortUpload marks the destination as aborted.
func (b *BufferDestination) AbortUpload(container, object, uploadID string) error {
	b.Aborted = true
	return nil
}

// Ensure that BufferDestination implements the Destination interface at compile-time
var _ auth.Destination = &BufferDestination{}
