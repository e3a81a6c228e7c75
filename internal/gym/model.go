package gym

import "time"

type Gym struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Location    string    `db:"location" json:"location"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// OccupancyStatus is an advisory snapshot; only the admission counter is
// authoritative at check-in time.
type OccupancyStatus struct {
	GymID     int  `json:"gym_id"`
	Current   int  `json:"current"`
	Max       int  `json:"max"`
	Available int  `json:"available"`
	Full      bool `json:"full"`
}

type CreateGymRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1"`
}

type UpdateCapacityRequest struct {
	MaxCapacity int `json:"max_capacity" binding:"required,min=1"`
}
