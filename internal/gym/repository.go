package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, location string, maxCapacity int) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, location, max_capacity)
		VALUES ($1, $2, $3)
		RETURNING id, name, location, max_capacity, created_at
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, name, location, maxCapacity)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, location, max_capacity, created_at
		FROM gyms
		ORDER BY created_at DESC
	`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, location, max_capacity, created_at
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) UpdateCapacity(ctx context.Context, id, maxCapacity int) (*Gym, error) {
	query := `
		UPDATE gyms
		SET max_capacity = $2
		WHERE id = $1
		RETURNING id, name, location, max_capacity, created_at
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id, maxCapacity)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) ListGymIDs(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM gyms ORDER BY id`

	var ids []int
	err := r.db.SelectContext(ctx, &ids, query)
	if err != nil {
		return nil, err
	}

	return ids, nil
}
