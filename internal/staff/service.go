package staff

import (
	"context"
	"errors"

	"gymgate/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffNotFound      = errors.New("staff not found")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Staff, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error)
	GetByID(ctx context.Context, id int) (*Staff, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Staff, error)
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

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Staff, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	created, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, req.Role)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		created.ID,
		created.Email,
		created.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return created, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		account.ID,
		account.Email,
		account.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Staff, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrStaffNotFound
	}
	return account, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Staff, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrStaffNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(account.ID, account.Email, account.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, account, nil
}
