package attendance

import (
	"context"
	"errors"
	"time"

	"kusgan/internal/logger"
	"kusgan/internal/member"
	"kusgan/internal/membership"
	"kusgan/internal/metrics"
)

const historyLimit = 100

var ErrMembershipInactive = errors.New("gym membership is not active")

type MemberLookup interface {
	Get(ctx context.Context, id string) (*member.Member, error)
}

type StatusProvider interface {
	Status(ctx context.Context, memberID string) (membership.Status, error)
}

type Service interface {
	CheckIn(ctx context.Context, memberID string) (*Visit, error)
	CheckOut(ctx context.Context, memberID string) (*Visit, error)
	ListByMember(ctx context.Context, memberID string) ([]Visit, error)
	ListByDate(ctx context.Context, day *membership.Date) ([]Visit, error)
}

type service struct {
	repo          Repository
	members       MemberLookup
	status        StatusProvider
	requireActive bool
	loc           *time.Location
	now           func() time.Time
}

func NewService(repo Repository, members MemberLookup, status StatusProvider, requireActive bool, loc *time.Location) Service {
	return &service{
		repo:          repo,
		members:       members,
		status:        status,
		requireActive: requireActive,
		loc:           loc,
		now:           time.Now,
	}
}

func (s *service) CheckIn(ctx context.Context, memberID string) (*Visit, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if s.requireActive {
		st, err := s.status.Status(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if st.GymState != membership.StateActive {
			metrics.RecordCheckIn("inactive")
			logger.Info("Check-in refused", "member_id", m.ID, "gym_state", string(st.GymState))
			return nil, ErrMembershipInactive
		}
	}

	now := s.now()
	v, err := s.repo.CheckIn(ctx, m.ID, now, membership.DateOf(now, s.loc))
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			metrics.RecordCheckIn("duplicate")
		}
		return nil, err
	}

	metrics.RecordCheckIn("ok")
	return v, nil
}

func (s *service) CheckOut(ctx context.Context, memberID string) (*Visit, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	v, err := s.repo.CheckOut(ctx, m.ID, s.now())
	if err != nil {
		return nil, err
	}
	v.Hours = v.Duration()
	return v, nil
}

func (s *service) ListByMember(ctx context.Context, memberID string) ([]Visit, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.ListByMember(ctx, m.ID, historyLimit)
	if err != nil {
		return nil, err
	}
	return withHours(visits), nil
}

// ListByDate lists visits for day, or for today in the gym's timezone when
// day is nil.
func (s *service) ListByDate(ctx context.Context, day *membership.Date) ([]Visit, error) {
	d := membership.DateOf(s.now(), s.loc)
	if day != nil {
		d = *day
	}

	visits, err := s.repo.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return withHours(visits), nil
}
