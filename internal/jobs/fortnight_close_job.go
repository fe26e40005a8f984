package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/nurpe/courier-payroll/internal/model"
)

type FortnightCloser interface {
	CloseFortnight(ctx context.Context, reference time.Time) ([]model.PayrollClosing, error)
}

// FortnightCloseJob stores the payroll closing of the fortnight that ended
// before each run. The default schedule fires on the 1st and the 16th.
type FortnightCloseJob struct {
	closer FortnightCloser
	spec   string
	now    func() time.Time
	cron   *cron.Cron
	log    zerolog.Logger
}

func NewFortnightCloseJob(closer FortnightCloser, spec string, loc *time.Location, now func() time.Time, log zerolog.Logger) *FortnightCloseJob {
	if loc == nil {
		loc = time.UTC
	}
	return &FortnightCloseJob{
		closer: closer,
		spec:   spec,
		now:    now,
		cron:   cron.New(cron.WithLocation(loc)),
		log:    log.With().Str("component", "fortnight_close_job").Logger(),
	}
}

func (j *FortnightCloseJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info().Str("schedule", j.spec).Msg("fortnight close job started")
	return nil
}

// Run closes the previous fortnight once. Failures are logged; the next tick
// retries and overwrites the same rows.
func (j *FortnightCloseJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	closings, err := j.closer.CloseFortnight(ctx, j.now())
	if err != nil {
		j.log.Error().Err(err).Msg("fortnight close failed")
		return
	}
	j.log.Info().Int("couriers", len(closings)).Msg("fortnight closed")
}

func (j *FortnightCloseJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("fortnight close job stopped")
}
