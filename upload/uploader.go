package upload

import (
	"fmt"

	"github.com/etaque/gfs-wind-downloader/auth"
)

const (
	kibibyte = 1024
	mebibyte = kibibyte * kibibyte

	// MinPartSize is the smallest part that the remote store accepts for
	// any part other than the final one.
	MinPartSize = 5 * mebibyte
)

// MultipartUploader accumulates written bytes and uploads them as the
// numbered parts of one multipart transfer. Parts are numbered
// contiguously from 1 and uploaded strictly in order, one at a time.
//
// A MultipartUploader is not safe for concurrent use; drive one uploader
// from a single goroutine and end it with exactly one call to Finalize
// or Abort.
type MultipartUploader struct {
	Status *Status

	destination auth.Destination
	container   string
	object      string
	uploadID    string
	buffer      []byte
	nextPart    int
	parts       []auth.CompletedPart
	consumed    bool
}

// NewMultipartUploader opens a multipart transfer for the named object
// and returns an uploader ready to receive writes. It returns an
// InitiationError when the remote rejects the request or returns no
// usable session token.
func NewMultipartUploader(destination auth.Destination, container, object string) (*MultipartUploader, error) {
	if container == "" {
		return nil, &InitiationError{Container: container, Object: object,
			Err: fmt.Errorf("Container name cannot be the empty string")}
	}
	if object == "" {
		return nil, &InitiationError{Container: container, Object: object,
			Err: fmt.Errorf("Object name cannot be the empty string")}
	}
	uploadID, err := destination.CreateUpload(container, object)
	if err != nil {
		return nil, &InitiationError{Container: container, Object: object, Err: err}
	}
	if uploadID == "" {
		return nil, &InitiationError{Container: container, Object: object,
			Err: fmt.Errorf("No upload ID returned by the destination")}
	}
	uploader := &MultipartUploader{
		Status:      newStatus(),
		destination: destination,
		container:   container,
		object:      object,
		uploadID:    uploadID,
		buffer:      make([]byte, 0, MinPartSize),
		nextPart:    1,
	}
	uploader.Status.start()
	return uploader, nil
}

// Write appends data to the upload buffer and uploads a part for every
// full MinPartSize slice available. On a PartUploadError the session is
// left open with its buffer intact; the caller must then Abort.
func (u *MultipartUploader) Write(data []byte) error {
	if u.consumed {
		return &PartUploadError{Container: u.container, Object: u.object,
			PartNumber: u.nextPart, Err: errSessionConsumed}
	}
	u.buffer = append(u.buffer, data...)
	for len(u.buffer) >= MinPartSize {
		if err := u.flushPart(MinPartSize); err != nil {
			return err
		}
	}
	return nil
}

// flushPart uploads exactly size bytes from the head of the buffer as
// the next part. The buffer and part counter only advance once the
// remote has acknowledged the part with a completion tag.
func (u *MultipartUploader) flushPart(size int) error {
	tag, err := u.destination.UploadPart(u.container, u.object, u.uploadID, u.nextPart, u.buffer[:size])
	if err != nil {
		return &PartUploadError{Container: u.container, Object: u.object,
			PartNumber: u.nextPart, Err: err}
	}
	if tag == "" {
		return &PartUploadError{Container: u.container, Object: u.object,
			PartNumber: u.nextPart, Err: fmt.Errorf("No completion tag returned by the destination")}
	}
	u.parts = append(u.parts, auth.CompletedPart{PartNumber: u.nextPart, Tag: tag})
	u.nextPart++
	u.buffer = u.buffer[size:]
	u.Status.partComplete(uint(size))
	return nil
}

// Finalize flushes any remaining buffered bytes as the final part, which
// alone may be smaller than MinPartSize, and asks the remote to assemble
// the parts in order. A session that never produced a part uploads one
// explicit empty part first, since the remote requires at least one. On
// success the session is consumed; on failure it stays open and the
// caller must Abort.
func (u *MultipartUploader) Finalize() error {
	if u.consumed {
		return &FinalizeError{Container: u.container, Object: u.object, Err: errSessionConsumed}
	}
	if len(u.buffer) > 0 {
		if err := u.flushPart(len(u.buffer)); err != nil {
			return err
		}
	}
	if len(u.parts) == 0 {
		if err := u.flushPart(0); err != nil {
			return err
		}
	}
	err := u.destination.CompleteUpload(u.container, u.object, u.uploadID, u.parts)
	if err != nil {
		return &FinalizeError{Container: u.container, Object: u.object, Err: err}
	}
	u.consumed = true
	u.Status.stop()
	return nil
}

// Abort cancels the transfer, releasing remote resources held for parts
// uploaded so far. The session is consumed whether or not the remote
// accepts the cancellation.
func (u *MultipartUploader) Abort() error {
	if u.consumed {
		return &AbortError{Container: u.container, Object: u.object, Err: errSessionConsumed}
	}
	u.consumed = true
	u.Status.stop()
	if err := u.destination.AbortUpload(u.container, u.object, u.uploadID); err != nil {
		return &AbortError{Container: u.container, Object: u.object, Err: err}
	}
	return nil
}
