package staff

import (
	"context"
	"errors"

	"kusgan/internal/auth"
	"kusgan/internal/logger"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Staff, error)
	Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error)
	GetByID(ctx context.Context, id int) (*Staff, error)
	Refresh(ctx context.Context, refreshToken string) (string, *Staff, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Staff, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = auth.RoleStaff
	}

	return s.repo.Create(ctx, req.Name, req.Email, passwordHash, role)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(account.ID, account.Email, account.Role, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Staff, error) {
	return s.repo.FindByID(ctx, id)
}

// Refresh issues a new access token with the role currently stored, not the
// one baked into the refresh token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, *Staff, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByID(ctx, claims.StaffID)
	if err != nil {
		return "", nil, err
	}

	accessToken, err := auth.GenerateAccessToken(account.ID, account.Email, account.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return accessToken, account, nil
}

// EnsureAdmin creates the bootstrap admin account when it is missing.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil || exists {
		return err
	}

	if _, err := s.Register(ctx, RegisterRequest{Name: "Administrator", Email: email, Password: password, Role: auth.RoleAdmin}); err != nil {
		return err
	}
	logger.Info("Bootstrap admin created", "email", email)
	return nil
}
