package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/etaque/gfs-wind-downloader/auth"
	"github.com/etaque/gfs-wind-downloader/fetch"
)

const dateFormat = "2006-01-02"

func main() {
	var (
		startDate = pflag.String("start-date", "", "start date (YYYY-MM-DD)")
		endDate   = pflag.String("end-date", "", "end date (YYYY-MM-DD)")
		container = pflag.String("container", "", "destination bucket or container name")
		prefix    = pflag.String("prefix", "", "object name prefix, e.g. wind/2020/")
		backend   = pflag.String("backend", "s3", "storage backend: s3 or swift")
		region    = pflag.String("region", "", "AWS region (defaults to AWS_REGION)")
		username  = pflag.String("os-username", "", "OpenStack username")
		password  = pflag.String("os-password", "", "OpenStack password or API key")
		authURL   = pflag.String("os-auth-url", "", "OpenStack auth URL ending in its version, e.g. https://identity.example.com/v3")
		domain    = pflag.String("os-domain", "", "OpenStack domain name (optional)")
		tenant    = pflag.String("os-tenant", "", "OpenStack tenant or project (optional)")
	)
	pflag.Parse()

	log := logrus.New()

	start, err := time.Parse(dateFormat, *startDate)
	if err != nil {
		log.Fatal("Invalid start date format (use YYYY-MM-DD)")
	}
	end, err := time.Parse(dateFormat, *endDate)
	if err != nil {
		log.Fatal("Invalid end date format (use YYYY-MM-DD)")
	}
	if start.After(end) {
		log.Fatal("Start date must be before or equal to end date")
	}
	if *container == "" {
		log.Fatal("A destination container must be provided")
	}

	var destination auth.Destination
	switch *backend {
	case "s3":
		destination, err = auth.NewS3Destination(*region)
	case "swift":
		destination, err = auth.Authenticate(*username, *password, *authURL, *domain, *tenant)
	default:
		log.Fatalf("Unknown backend %q (expected s3 or swift)", *backend)
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to object storage")
	}

	fetcher := &fetch.Fetcher{
		Client:      &http.Client{Timeout: 10 * time.Minute},
		Destination: destination,
		Log:         log,
	}

	jobs := fetch.JobsBetween(start, end, *container, *prefix)
	log.WithFields(logrus.Fields{
		"start": start.Format(dateFormat),
		"end":   end.Format(dateFormat),
		"jobs":  len(jobs),
	}).Info("Starting downloads")

	failures := 0
	for _, job := range jobs {
		if err := fetcher.Run(job); err != nil {
			failures++
			log.WithError(err).WithField("object", job.ObjectName()).Error("Job failed")
		}
	}
	if failures > 0 {
		log.WithField("failures", failures).Error("Finished with failures")
		os.Exit(1)
	}
	log.Info("Done")
}
