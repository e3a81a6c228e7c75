package gym

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateGym(ctx context.Context, name, location string, maxCapacity int) (*Gym, error) {
	args := m.Called(ctx, name, location, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockRepository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) UpdateCapacity(ctx context.Context, id, maxCapacity int) (*Gym, error) {
	args := m.Called(ctx, id, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) ListGymIDs(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockCounter is a mock implementation of occupancy.Counter
type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) TryAdmit(ctx context.Context, gymID, max int) (bool, error) {
	args := m.Called(ctx, gymID, max)
	return args.Bool(0), args.Error(1)
}

func (m *MockCounter) Release(ctx context.Context, gymID int) error {
	args := m.Called(ctx, gymID)
	return args.Error(0)
}

func (m *MockCounter) Current(ctx context.Context, gymID int) (int, error) {
	args := m.Called(ctx, gymID)
	return args.Int(0), args.Error(1)
}

func (m *MockCounter) Set(ctx context.Context, gymID, value int) error {
	args := m.Called(ctx, gymID, value)
	return args.Error(0)
}

func TestCreateGym(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCounter))

	expected := &Gym{ID: 1, Name: "Downtown", Location: "Main St", MaxCapacity: 50, CreatedAt: time.Now()}
	repo.On("CreateGym", mock.Anything, "Downtown", "Main St", 50).Return(expected, nil)

	g, err := svc.CreateGym(context.Background(), CreateGymRequest{Name: "Downtown", Location: "Main St", MaxCapacity: 50})

	assert.NoError(t, err)
	assert.Equal(t, expected, g)
	repo.AssertExpectations(t)
}

func TestGetGymByID_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCounter))

	repo.On("GetGymByID", mock.Anything, 42).Return(nil, errors.New("sql: no rows in result set"))

	g, err := svc.GetGymByID(context.Background(), 42)

	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrGymNotFound)
}

func TestUpdateCapacity(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCounter))

		existing := &Gym{ID: 1, Name: "Downtown", MaxCapacity: 50}
		updated := &Gym{ID: 1, Name: "Downtown", MaxCapacity: 80}
		repo.On("GetGymByID", mock.Anything, 1).Return(existing, nil)
		repo.On("UpdateCapacity", mock.Anything, 1, 80).Return(updated, nil)

		g, err := svc.UpdateCapacity(context.Background(), 1, UpdateCapacityRequest{MaxCapacity: 80})

		assert.NoError(t, err)
		assert.Equal(t, 80, g.MaxCapacity)
		repo.AssertExpectations(t)
	})

	t.Run("gym not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCounter))

		repo.On("GetGymByID", mock.Anything, 9).Return(nil, errors.New("sql: no rows in result set"))

		g, err := svc.UpdateCapacity(context.Background(), 9, UpdateCapacityRequest{MaxCapacity: 80})

		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrGymNotFound)
		repo.AssertNotCalled(t, "UpdateCapacity", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetOccupancy(t *testing.T) {
	tests := []struct {
		name          string
		maxCapacity   int
		current       int
		wantAvailable int
		wantFull      bool
	}{
		{name: "empty gym", maxCapacity: 50, current: 0, wantAvailable: 50, wantFull: false},
		{name: "partially occupied", maxCapacity: 50, current: 30, wantAvailable: 20, wantFull: false},
		{name: "at capacity", maxCapacity: 50, current: 50, wantAvailable: 0, wantFull: true},
		{name: "over capacity after downsize", maxCapacity: 20, current: 25, wantAvailable: 0, wantFull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			counter := new(MockCounter)
			svc := NewService(repo, counter)

			repo.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, MaxCapacity: tt.maxCapacity}, nil)
			counter.On("Current", mock.Anything, 1).Return(tt.current, nil)

			status, err := svc.GetOccupancy(context.Background(), 1)

			assert.NoError(t, err)
			assert.Equal(t, tt.current, status.Current)
			assert.Equal(t, tt.maxCapacity, status.Max)
			assert.Equal(t, tt.wantAvailable, status.Available)
			assert.Equal(t, tt.wantFull, status.Full)
		})
	}
}

func TestGetOccupancy_CounterError(t *testing.T) {
	repo := new(MockRepository)
	counter := new(MockCounter)
	svc := NewService(repo, counter)

	repo.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, MaxCapacity: 50}, nil)
	counter.On("Current", mock.Anything, 1).Return(0, errors.New("redis: connection refused"))

	status, err := svc.GetOccupancy(context.Background(), 1)

	assert.Nil(t, status)
	assert.Error(t, err)
}
