package upload

import (
	"fmt"
	"time"
)

// currentStatus holds a snapshot of upload progress.
type currentStatus struct {
	partsUploaded  uint
	bytesUploaded  uint
	uploadStarted  time.Time
	uploadDuration time.Duration
}

// rate computes the upload rate of the observed upload in bytes per second.
func (s *currentStatus) rate() float64 {
	if s.uploadStarted == (time.Time{}) {
		return 0.0
	} else if s.uploadDuration != (time.Duration(0)) {
		return float64(s.bytesUploaded) / s.uploadDuration.Seconds()
	}
	elapsed := time.Since(s.uploadStarted)
	return float64(s.bytesUploaded) / elapsed.Seconds()
}

// String generates a status message out of the currentStatus struct
func (s *currentStatus) String() string {
	if s.uploadStarted == (time.Time{}) {
		return "Upload not started yet"
	} else if s.uploadDuration != time.Duration(0) {
		return fmt.Sprintf(
			"Uploaded %d parts (%d bytes) in %s at approximately %2.2f MB/sec",
			s.partsUploaded,
			s.bytesUploaded,
			s.uploadDuration,
			s.rate()/(1000*1000))
	}
	return fmt.Sprintf(
		"[%s] %d parts uploaded (%d bytes)\tAverage Upload Speed %03.2f MB/sec",
		time.Now(),
		s.partsUploaded,
		s.bytesUploaded,
		s.rate()/(1000*1000))
}

// Status monitors the current progress of a multipart upload. Its
// counters are owned by a single goroutine and queried over channels, so
// it is safe to read from other goroutines while an upload runs.
type Status struct {
	partCompleted chan uint
	requestStatus chan chan *currentStatus
	signalStart   chan struct{}
	signalStop    chan struct{}
}

// newStatus creates a Status and starts the goroutine that owns its state.
func newStatus() *Status {
	stat := &Status{
		partCompleted: make(chan uint),
		requestStatus: make(chan chan *currentStatus),
		signalStart:   make(chan struct{}),
		signalStop:    make(chan struct{}),
	}
	go func(s *Status) {
		current := currentStatus{}
		for {
			select {
			case <-s.signalStart:
				current.uploadStarted = time.Now()
			case <-s.signalStop:
				if current.uploadDuration == time.Duration(0) {
					current.uploadDuration = time.Since(current.uploadStarted)
				}
			case size := <-s.partCompleted:
				current.partsUploaded++
				current.bytesUploaded += size
			case sendBack := <-s.requestStatus:
				snapshot := current
				sendBack <- &snapshot
			}
		}
	}(stat)
	return stat
}

// start marks the beginning of the upload for rate computation.
func (s *Status) start() {
	s.signalStart <- struct{}{}
}

// stop freezes the upload duration.
func (s *Status) stop() {
	s.signalStop <- struct{}{}
}

// partComplete records one uploaded part of the given size.
func (s *Status) partComplete(size uint) {
	s.partCompleted <- size
}

// snapshot fetches a copy of the current counters.
func (s *Status) snapshot() *currentStatus {
	sendBack := make(chan *currentStatus)
	s.requestStatus <- sendBack
	return <-sendBack
}

// PartsUploaded returns the number of parts acknowledged so far.
func (s *Status) PartsUploaded() uint {
	return s.snapshot().partsUploaded
}

// BytesUploaded returns the number of bytes acknowledged so far.
func (s *Status) BytesUploaded() uint {
	return s.snapshot().bytesUploaded
}

// Rate returns the average upload rate in bytes per second.
func (s *Status) Rate() float64 {
	return s.snapshot().rate()
}

// String reports the current progress in human-readable form.
func (s *Status) String() string {
	return s.snapshot().String()
}
