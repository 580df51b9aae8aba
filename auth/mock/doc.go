/*
Package mock provides fake object storage endpoints for testing

The structs defined here all implement the
github.com/etaque/gfs-wind-downloader/auth.Destination interface and are
therefore useful for testing any code that uploads data via a
destination. It includes an endpoint that does nothing, an endpoint that
records uploaded parts in memory, an endpoint that always generates
errors, and an endpoint that starts failing after a configurable number
of parts.
*/
package mock
