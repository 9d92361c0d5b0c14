package reminder

import (
	"context"
	"fmt"
	"time"

	"kusgan/internal/logger"
	"kusgan/internal/member"
	"kusgan/internal/membership"
	"kusgan/internal/metrics"

	"github.com/robfig/cron/v3"
)

const runTimeout = 5 * time.Minute

type MemberSource interface {
	ListWithEmail(ctx context.Context) ([]member.Member, error)
}

type StatusSource interface {
	Statuses(ctx context.Context, memberIDs []string) (map[string]membership.Status, error)
}

type Sender interface {
	SendExpiryReminder(ctx context.Context, to, name string, end membership.Date, daysLeft int) error
}

// Job mails members whose gym membership ends exactly daysAhead days from
// today.
type Job struct {
	members   MemberSource
	statuses  StatusSource
	sender    Sender
	daysAhead int
	cron      *cron.Cron
}

func NewJob(members MemberSource, statuses StatusSource, sender Sender, daysAhead int, loc *time.Location) *Job {
	return &Job{
		members:   members,
		statuses:  statuses,
		sender:    sender,
		daysAhead: daysAhead,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start schedules Run with a standard five-field cron expression evaluated in
// the gym's timezone.
func (j *Job) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, j.runScheduled); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	logger.Info("Expiry reminders scheduled", "schedule", schedule, "days_ahead", j.daysAhead)
	return nil
}

// Stop waits for a running pass to finish.
func (j *Job) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Job) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	sent, err := j.Run(ctx)
	if err != nil {
		logger.Error("Expiry reminder run failed", "error", err)
		return
	}
	logger.Info("Expiry reminder run finished", "queued", sent)
}

// Run performs one pass and returns how many reminders were queued. A failed
// send is logged and skipped so one bad address does not block the rest.
func (j *Job) Run(ctx context.Context) (int, error) {
	members, err := j.members.ListWithEmail(ctx)
	if err != nil {
		return 0, fmt.Errorf("list members: %w", err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	statuses, err := j.statuses.Statuses(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("compute statuses: %w", err)
	}

	sent := 0
	for _, m := range members {
		st, ok := statuses[m.ID]
		if !ok || st.GymState != membership.StateActive || st.GymEndDate == nil {
			continue
		}
		daysLeft := st.AsOf.DaysUntil(*st.GymEndDate)
		if daysLeft != j.daysAhead {
			continue
		}

		if err := j.sender.SendExpiryReminder(ctx, *m.Email, m.Nickname, *st.GymEndDate, daysLeft); err != nil {
			logger.Warn("Failed to queue expiry reminder", "member_id", m.ID, "error", err)
			continue
		}
		metrics.RecordReminder()
		sent++
	}

	return sent, nil
}
