package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ncw/swift"
)

// sloEntry is a single record in a Static Large Object manifest.
type sloEntry struct {
	Path string `json:"path"`
	Etag string `json:"etag"`
}

// UploadPart stores one part as a segment object and returns the md5 etag
// reported by the store. Swift verifies the etag against the uploaded
// bytes, so a returned tag doubles as an integrity check.
func (s *SwiftDestination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	segment := segmentName(object, uploadID, partNumber)
	headers, err := s.SwiftConnection.ObjectPut(container, segment, bytes.NewReader(data), true, "", "application/octet-stream", nil)
	if err != nil {
		return "", fmt.Errorf("Failed to upload segment %s: %s", segment, err)
	}
	etag := headers["Etag"]
	if etag == "" {
		return "", fmt.Errorf("No etag returned for segment %s", segment)
	}
	return etag, nil
}

// CompleteUpload assembles the segments into the final object by uploading
// a Static Large Object manifest that references them in part order.
func (s *SwiftDestination) CompleteUpload(container, object, uploadID string, parts []CompletedPart) error {
	entries := make([]sloEntry, len(parts))
	for index, part := range parts {
		entries[index] = sloEntry{
			Path: container + "/" + segmentName(object, uploadID, part.PartNumber),
			Etag: part.Tag,
		}
	}
	manifestJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("Failed to convert manifest to JSON: %s", err)
	}
	// The ?multipart-manifest=put query string is not expressible through
	// the swift client's ObjectPut, so the manifest goes up as a raw PUT.
	targetUrl := s.SwiftConnection.StorageUrl + "/" + container + "/" + object + "?multipart-manifest=put"
	request, err := http.NewRequest(http.MethodPut, targetUrl, bytes.NewReader(manifestJSON))
	if err != nil {
		return fmt.Errorf("Failed to create request for uploading manifest: %s", err)
	}
	request.Header.Add("X-Auth-Token", s.SwiftConnection.AuthToken)
	request.Header.Add("Content-Length", strconv.Itoa(len(manifestJSON)))
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return fmt.Errorf("Error sending manifest upload request: %s", err)
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("Failed to upload manifest with status %d", response.StatusCode)
	}
	return nil
}

// AbortUpload deletes every segment stored so far under the upload ID.
func (s *SwiftDestination) AbortUpload(container, object, uploadID string) error {
	prefix := object + "/" + uploadID + "/"
	segments, err := s.SwiftConnection.ObjectNamesAll(container, &swift.ObjectsOpts{Prefix: prefix})
	if err != nil {
		return fmt.Errorf("Failed to list segments for aborted upload %s: %s", uploadID, err)
	}
	for _, segment := range segments {
		if err := s.SwiftConnection.ObjectDelete(container, segment); err != nil {
			return fmt.Errorf("Failed to delete segment %s: %s", segment, err)
		}
	}
	return nil
}

// Ensure that SwiftDestination implements the Destination interface at compile-time
var _ Destination = &SwiftDestination{}
