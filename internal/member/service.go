package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"kusgan/internal/membership"
)

const (
	maxIDPrefix   = 8
	maxIDAttempts = 50
	defaultLimit  = 50
	maxListLimit  = 200
)

var ErrInvalidNickname = errors.New("nickname must contain at least one letter or digit")

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Member, error)
	Get(ctx context.Context, id string) (*Member, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]Member, error)
	ListWithEmail(ctx context.Context) ([]Member, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) Service {
	return &service{repo: repo, loc: loc, now: time.Now}
}

// BaseID builds the front-desk member code: up to eight uppercase letters or
// digits of the nickname, a dash and the join date as YYMMDD.
func BaseID(nickname string, joined membership.Date) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(nickname) {
		if b.Len() >= maxIDPrefix {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", ErrInvalidNickname
	}
	return fmt.Sprintf("%s-%02d%02d%02d", b.String(), joined.Year%100, int(joined.Month), joined.Day), nil
}

func candidateID(base string, attempt int) string {
	if attempt == 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	joined := membership.DateOf(s.now(), s.loc)
	if req.JoinedOn != "" {
		d, err := membership.ParseDate(req.JoinedOn)
		if err != nil {
			return nil, err
		}
		joined = d
	}

	base, err := BaseID(req.Nickname, joined)
	if err != nil {
		return nil, err
	}

	m := Member{
		Nickname:  strings.TrimSpace(req.Nickname),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Phone:     req.Phone,
		JoinedOn:  joined,
	}

	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		m.ID = candidateID(base, attempt)

		taken, err := s.repo.IDExists(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		created, err := s.repo.Create(ctx, m)
		if errors.Is(err, ErrIDTaken) {
			// Lost a race with a concurrent registration.
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrIDTaken, base)
}

func (s *service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.IDExists(ctx, id)
}

func (s *service) List(ctx context.Context, search string, limit, offset int) ([]Member, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, search, limit, offset)
}

func (s *service) ListWithEmail(ctx context.Context) ([]Member, error) {
	return s.repo.ListWithEmail(ctx)
}
