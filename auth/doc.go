/*
Package auth provides easy methods to authenticate with Object Storage

The main fixture of the auth package is the Destination interface.
Destination exposes the multipart transfer operations that the rest of
gfs-wind-downloader needs: begin an upload session, send numbered parts,
and then either complete or abort the session. Wrapping the real client
libraries behind this interface makes it easy to write tests against
mock implementations, which can be found in the mock subpackage.

Two real implementations are provided. SwiftDestination talks to
OpenStack Swift (wrapping github.com/ncw/swift.Connection): parts become
segment objects and completing the upload writes a Static Large Object
manifest that stitches them together. S3Destination talks to Amazon S3
using the native multipart upload API.

For Swift, call Authenticate() with your credentials to set up a
Destination. Note that the auth URL must end with its auth version,
e.g. https://identity.example.com/v3.
*/
package auth
