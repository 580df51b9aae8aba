/*
Package grib extracts complete GRIB2 messages from a byte stream.

The StreamParser accepts arbitrarily chunked input via Feed and emits
each complete message as soon as its final byte arrives. It does not
decode message contents; a Message is simply the raw bytes of one
well-framed GRIB2 message, from the "GRIB" indicator through the
"7777" end marker.

IsWindMessage performs the one piece of content inspection this
project needs: deciding whether a message carries a wind component
(UGRD or VGRD) so that everything else can be discarded before upload.
*/
package grib
