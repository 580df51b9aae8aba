/*
Package pipeline implements channel stages for streams of GRIB2 messages.

The functions defined in this package are stages that communicate with
channels of grib.Message. Pass the channel produced by one stage as the
input to the next; each stage runs in its own goroutine and closes its
output when its input is exhausted.

Stages that can encounter errors accept an errors channel. It is
generally sufficient to create a single errors channel and pass it to
all stages, but ensure that you drain it, or the pipeline will block on
the first error that it encounters.
*/
package pipeline
