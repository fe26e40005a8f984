package jobs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	fortnightClose *FortnightCloseJob
}

func NewJobManager(closer FortnightCloser, closeSpec string, loc *time.Location, now func() time.Time, log zerolog.Logger) *JobManager {
	return &JobManager{
		fortnightClose: NewFortnightCloseJob(closer, closeSpec, loc, now, log),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.fortnightClose.Start(); err != nil {
		return fmt.Errorf("failed to start fortnight close job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.fortnightClose.Stop()
}
