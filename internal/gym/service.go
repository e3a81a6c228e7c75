package gym

import (
	"context"
	"errors"

	"gymgate/internal/occupancy"
)

var ErrGymNotFound = errors.New("gym not found")

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateCapacity(ctx context.Context, id int, req UpdateCapacityRequest) (*Gym, error)
	GetOccupancy(ctx context.Context, id int) (*OccupancyStatus, error)
}

type service struct {
	repo    Repository
	counter occupancy.Counter
}

func NewService(repo Repository, counter occupancy.Counter) Service {
	return &service{
		repo:    repo,
		counter: counter,
	}
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	return s.repo.CreateGym(ctx, req.Name, req.Location, req.MaxCapacity)
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	g, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		return nil, ErrGymNotFound
	}
	return g, nil
}

func (s *service) UpdateCapacity(ctx context.Context, id int, req UpdateCapacityRequest) (*Gym, error) {
	if _, err := s.repo.GetGymByID(ctx, id); err != nil {
		return nil, ErrGymNotFound
	}

	return s.repo.UpdateCapacity(ctx, id, req.MaxCapacity)
}

func (s *service) GetOccupancy(ctx context.Context, id int) (*OccupancyStatus, error) {
	g, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		return nil, ErrGymNotFound
	}

	current, err := s.counter.Current(ctx, id)
	if err != nil {
		return nil, err
	}

	available := g.MaxCapacity - current
	if available < 0 {
		available = 0
	}

	return &OccupancyStatus{
		GymID:     g.ID,
		Current:   current,
		Max:       g.MaxCapacity,
		Available: available,
		Full:      current >= g.MaxCapacity,
	}, nil
}
