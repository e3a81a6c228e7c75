package gym

import "context"

type Repository interface {
	CreateGym(ctx context.Context, name, location string, maxCapacity int) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateCapacity(ctx context.Context, id, maxCapacity int) (*Gym, error)
	ListGymIDs(ctx context.Context) ([]int, error)
}
