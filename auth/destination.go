package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ncw/swift"
)

// CompletedPart records the remote store's acknowledgement of one
// uploaded part: its position in the transfer and the opaque tag the
// store issued for it.
type CompletedPart struct {
	PartNumber int
	Tag        string
}

// Destination defines a remote store that accepts multipart transfers.
type Destination interface {
	// CreateUpload begins a multipart transfer for the named object and
	// returns the session token identifying it.
	CreateUpload(container string, object string) (string, error)

	// UploadPart sends one numbered part and returns the completion tag
	// issued by the store for it.
	UploadPart(container string, object string, uploadID string, partNumber int, data []byte) (string, error)

	// CompleteUpload finishes the transfer. The parts must be listed in
	// ascending part-number order.
	CompleteUpload(container string, object string, uploadID string, parts []CompletedPart) error

	// AbortUpload cancels the transfer and releases any resources the
	// store holds for parts uploaded so far.
	AbortUpload(container string, object string, uploadID string) error
}

// SwiftDestination implements the Destination interface for OpenStack Swift.
// Each part is stored as a segment object; completing the upload writes a
// Static Large Object manifest referencing the segments in order.
type SwiftDestination struct {
	SwiftConnection *swift.Connection
}

// segmentName is the object name under which one part is stored. The
// zero-padded part number keeps segments in lexicographic part order.
func segmentName(object, uploadID string, partNumber int) string {
	return fmt.Sprintf("%s/%s/%08d", object, uploadID, partNumber)
}

// CreateUpload ensures the target container exists and mints an upload ID
// for the transfer. Swift has no server-side upload session; the ID groups
// segment objects together until the manifest is written.
func (s *SwiftDestination) CreateUpload(container, object string) (string, error) {
	err := s.SwiftConnection.ContainerCreate(container, nil)
	if err != nil {
		return "", fmt.Errorf("Failed to ensure container %s exists: %s", container, err)
	}
	return fmt.Sprintf("%016x", time.Now().UnixNano()), nil
}

// AuthUrl retrieves the storage URL for this destination.
func (s *SwiftDestination) AuthUrl() string {
	return s.SwiftConnection.StorageUrl
}

// AuthToken returns the authentication token for this destination.
func (s *SwiftDestination) AuthToken() string {
	return s.SwiftConnection.AuthToken
}

// GetAuthVersion extracts the OpenStack auth version from the end of an authURL.
func getAuthVersion(url string) (int, error) {
	// Extract auth version from auth URL
	authVersionRegex, err := regexp.Compile(".*/v([0-9])[.0-9]*/?$")
	if err != nil {
		return 0, fmt.Errorf("Unable to compile auth version regex")
	}
	matches := authVersionRegex.FindStringSubmatch(url)
	if len(matches) < 2 {
		return 0, fmt.Errorf("Unable to extract an auth version number from url %s", url)
	}
	authVersionNumber, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("Unable to convert version number %s to an integer", matches[1])
	}
	return authVersionNumber, nil
}

// Authenticate logs in to OpenStack object storage and returns a connection to the
// object store. The url MUST have its auth version at the end: https://example.com/v{1,2,3}
func Authenticate(username, apiKey, authURL, domain, tenant string) (Destination, error) {
	version, err := getAuthVersion(authURL)
	if err != nil {
		return &SwiftDestination{}, err
	}
	connection := swift.Connection{
		UserName:    username,
		ApiKey:      apiKey,
		AuthUrl:     authURL,
		Domain:      domain,
		Tenant:      tenant,
		AuthVersion: version,
	}
	err = connection.Authenticate()
	if err != nil {
		return &SwiftDestination{SwiftConnection: &connection}, fmt.Errorf("Failed to authenticate with object storage: %s", err)
	}
	return &SwiftDestination{SwiftConnection: &connection}, nil
}
