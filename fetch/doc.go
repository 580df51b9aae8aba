/*
Package fetch drives one download-and-upload job end to end.

A Job names one GFS forecast file by date and model run hour. The
Fetcher streams that file over HTTP, extracts GRIB2 messages with a
grib.StreamParser as bytes arrive, keeps only wind component messages,
and writes them into a multipart upload against an auth.Destination.
The upload is finalized when the stream ends cleanly and aborted on any
failure, so a crashed job never leaves orphaned parts behind.

Jobs are independent: a failure in one does not prevent others from
running.
*/
package fetch
