package pipeline

import (
	"sync"
	"time"

	"github.com/etaque/gfs-wind-downloader/grib"
)

// Map applies the provided operation to each message that passes through it.
// It sends errors from the operation to the errors channel, and will not send
// on a message that caused an error in the operation.
func Map(messages <-chan grib.Message, errors chan<- error, operation func(grib.Message) (grib.Message, error)) <-chan grib.Message {
	out := make(chan grib.Message)
	go func() {
		defer close(out)
		for message := range messages {
			if mapped, err := operation(message); err != nil {
				errors <- err
			} else {
				out <- mapped
			}
		}
	}()
	return out
}

// Filter applies the provided predicate to every message, passing on only
// messages that satisfy it.
func Filter(messages <-chan grib.Message, predicate func(grib.Message) bool) <-chan grib.Message {
	out := make(chan grib.Message)
	go func() {
		defer close(out)
		for message := range messages {
			if predicate(message) {
				out <- message
			}
		}
	}()
	return out
}

// Join performs a fan-in on the many input channels to combine their
// messages into one output channel.
func Join(chans ...<-chan grib.Message) <-chan grib.Message {
	var wg sync.WaitGroup
	out := make(chan grib.Message)
	go func() {
		defer close(out)
		for _, channel := range chans {
			wg.Add(1)
			go func(c <-chan grib.Message) {
				defer wg.Done()
				for message := range c {
					out <- message
				}
			}(channel)
		}
		wg.Wait()
	}()
	return out
}

// Count represents basic statistics about the messages that have passed
// through a Counter pipeline stage: the total bytes seen, the number of
// messages, and the duration since the stage started.
type Count struct {
	Bytes    uint
	Messages uint
	Elapsed  time.Duration
}

// Rate returns the rate of data flow in bytes per second
func (c Count) Rate() float64 {
	return float64(c.Bytes) / c.Elapsed.Seconds()
}

// RateMBPS returns the rate of data flow in megabytes per second
func (c Count) RateMBPS() float64 {
	return c.Rate() / (1000 * 1000)
}

// Counter passes messages through unchanged while sending a running Count
// after each one on its second return value. Drain the counts channel, or
// the stage will block.
func Counter(messages <-chan grib.Message) (<-chan grib.Message, <-chan Count) {
	out := make(chan grib.Message)
	counts := make(chan Count)
	go func() {
		defer close(out)
		defer close(counts)
		started := time.Now()
		var running Count
		for message := range messages {
			out <- message
			running.Messages++
			running.Bytes += uint(len(message))
			running.Elapsed = time.Since(started)
			counts <- running
		}
	}()
	return out, counts
}
