package fetch

import (
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/etaque/gfs-wind-downloader/auth"
	"github.com/etaque/gfs-wind-downloader/grib"
	"github.com/etaque/gfs-wind-downloader/pipeline"
	"github.com/etaque/gfs-wind-downloader/upload"
)

// readBufferSize is the size of the chunks read from the HTTP body and
// fed to the stream parser.
const readBufferSize = 64 * 1024

// Fetcher runs Jobs against an object storage destination.
type Fetcher struct {
	// Client issues the HTTP downloads. Transport timeouts and
	// cancellation are its responsibility.
	Client *http.Client
	// Destination receives the multipart uploads.
	Destination auth.Destination
	// BaseURL overrides DefaultBaseURL when set; useful for tests.
	BaseURL string
	// Log receives progress and failure reports. Defaults to the
	// standard logger.
	Log *logrus.Logger
}

func (f *Fetcher) baseURL() string {
	if f.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(f.BaseURL, "/")
}

func (f *Fetcher) log() *logrus.Logger {
	if f.Log == nil {
		return logrus.StandardLogger()
	}
	return f.Log
}

// Run downloads the job's file, extracts its wind messages, and uploads
// them as one object. Exactly one of finalize or abort is issued for
// the upload session on every path through this method.
func (f *Fetcher) Run(job Job) error {
	url := f.baseURL() + "/" + job.Path()
	log := f.log().WithFields(logrus.Fields{
		"url":    url,
		"object": job.ObjectName(),
	})

	response, err := f.Client.Get(url)
	if err != nil {
		return errors.Wrapf(err, "failed to request %s", url)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return errors.Errorf("HTTP %d for %s", response.StatusCode, url)
	}
	log.Info("Download started")

	var totalCount, windCount pipeline.Count
	err = upload.WithUpload(f.Destination, job.Container, job.ObjectName(), func(uploader *upload.MultipartUploader) error {
		parser := grib.NewStreamParser()
		extracted := make(chan grib.Message)
		readErr := make(chan error, 1)

		// Feed the parser from the body as bytes arrive; every complete
		// message goes down the pipeline immediately.
		go func() {
			defer close(extracted)
			buffer := make([]byte, readBufferSize)
			for {
				n, err := response.Body.Read(buffer)
				if n > 0 {
					for _, message := range parser.Feed(buffer[:n]) {
						extracted <- message
					}
				}
				if err == io.EOF {
					readErr <- nil
					return
				}
				if err != nil {
					readErr <- errors.Wrapf(err, "stream error reading %s", url)
					return
				}
			}
		}()

		all, allCounts := pipeline.Counter(extracted)
		wind, windCounts := pipeline.Counter(pipeline.Filter(all, grib.IsWindMessage))

		countsDone := make(chan struct{})
		go func() {
			defer close(countsDone)
			for allCounts != nil || windCounts != nil {
				select {
				case count, ok := <-allCounts:
					if !ok {
						allCounts = nil
						continue
					}
					totalCount = count
				case count, ok := <-windCounts:
					if !ok {
						windCounts = nil
						continue
					}
					windCount = count
				}
			}
		}()

		var writeErr error
		for message := range wind {
			if writeErr != nil {
				continue
			}
			if err := uploader.Write(message); err != nil {
				writeErr = err
				// Tear the download down so the pipeline drains quickly.
				response.Body.Close()
			}
		}
		<-countsDone
		if writeErr != nil {
			return writeErr
		}
		return <-readErr
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"messages":      totalCount.Messages,
		"wind_messages": windCount.Messages,
		"wind_bytes":    windCount.Bytes,
	}).Info("Upload complete")
	return nil
}
