package fetch

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the NCAR Research Data Archive root for the GFS
// 0.25 degree forecast dataset.
const DefaultBaseURL = "https://data.rda.ucar.edu/ds084.1"

// ModelRunHours are the GFS model run hours available per day.
var ModelRunHours = []string{"00", "06", "12", "18"}

// Job identifies one GFS forecast file to download and the object its
// wind messages should be uploaded as.
type Job struct {
	Date      time.Time
	Hour      string
	Container string
	Prefix    string
}

// Path returns the file's location relative to the dataset root.
func (j Job) Path() string {
	date := j.Date.Format("20060102")
	return fmt.Sprintf("%s/%s/gfs.0p25.%s%s.f000.grib2", j.Date.Format("2006"), date, date, j.Hour)
}

// ObjectName returns the destination object name, under the job's
// prefix when one is set.
func (j Job) ObjectName() string {
	name := fmt.Sprintf("wind_%s_%s.grb2", j.Date.Format("20060102"), j.Hour)
	if j.Prefix == "" {
		return name
	}
	return strings.TrimRight(j.Prefix, "/") + "/" + name
}

// JobsBetween enumerates one job per model run hour for every date from
// start through end inclusive.
func JobsBetween(start, end time.Time, container, prefix string) []Job {
	jobs := make([]Job, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, hour := range ModelRunHours {
			jobs = append(jobs, Job{
				Date:      date,
				Hour:      hour,
				Container: container,
				Prefix:    prefix,
			})
		}
	}
	return jobs
}
