/*
Package upload turns a sequence of writes into a multipart transfer.

The MultipartUploader buffers written bytes and uploads them as
numbered parts against an auth.Destination, honoring the remote
protocol's rule that every part except the final one must reach a
minimum size. Finalize assembles the parts into the finished object;
Abort cancels the transfer and releases whatever the remote holds.

Every code path that creates an uploader must end it with exactly one
terminal call. WithUpload wraps that discipline up: it finalizes on
success and aborts on error or panic, so callers cannot leak an upload
session.
*/
package upload
