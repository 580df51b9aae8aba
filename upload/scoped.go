package upload

import (
	"github.com/etaque/gfs-wind-downloader/auth"
)

// WithUpload opens a multipart transfer, runs action against it, and
// guarantees that the session receives exactly one terminal call on
// every exit path. When action returns nil the upload is finalized;
// when action returns an error or panics the upload is aborted and the
// original error or panic is propagated. A failed Finalize is likewise
// followed by an abort so the remote never holds orphaned parts.
//
// An abort failure on an error path is secondary and does not displace
// the error that triggered it.
func WithUpload(destination auth.Destination, container, object string, action func(*MultipartUploader) error) error {
	uploader, err := NewMultipartUploader(destination, container, object)
	if err != nil {
		return err
	}
	completed := false
	defer func() {
		if !completed {
			// Reached on panic out of action: release the session, then
			// let the panic continue unwinding.
			_ = uploader.Abort()
		}
	}()
	if err := action(uploader); err != nil {
		_ = uploader.Abort()
		completed = true
		return err
	}
	if err := uploader.Finalize(); err != nil {
		_ = uploader.Abort()
		completed = true
		return err
	}
	completed = true
	return nil
}
