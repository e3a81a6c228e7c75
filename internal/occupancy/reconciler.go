package occupancy

import (
	"context"
	"time"

	"gymgate/internal/logger"
	"gymgate/internal/metrics"
)

// OpenSessionSource reports how many attendance sessions are currently open
// for a gym. Implemented by the attendance repository.
type OpenSessionSource interface {
	CountOpenByGym(ctx context.Context, gymID int) (int, error)
}

// GymSource lists the gyms that carry a counter.
type GymSource interface {
	ListGymIDs(ctx context.Context) ([]int, error)
}

// Reconciler periodically recomputes each gym's occupancy from the open
// attendance records, the durable source of truth, and corrects the fast
// counter when the two have drifted apart (e.g. after a crash between record
// creation and counter update).
type Reconciler struct {
	counter  Counter
	sessions OpenSessionSource
	gyms     GymSource
	interval time.Duration
}

func NewReconciler(counter Counter, sessions OpenSessionSource, gyms GymSource, interval time.Duration) *Reconciler {
	return &Reconciler{
		counter:  counter,
		sessions: sessions,
		gyms:     gyms,
		interval: interval,
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	logger.Info("occupancy reconciler started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("occupancy reconciler stopped")
			return
		case <-ticker.C:
			r.ReconcileAll(ctx)
		}
	}
}

func (r *Reconciler) ReconcileAll(ctx context.Context) {
	gymIDs, err := r.gyms.ListGymIDs(ctx)
	if err != nil {
		logger.Error("reconcile: failed to list gyms", "error", err)
		return
	}

	for _, gymID := range gymIDs {
		if err := r.ReconcileGym(ctx, gymID); err != nil {
			logger.Error("reconcile: gym failed", "gym_id", gymID, "error", err)
		}
	}
}

// ReconcileGym corrects one gym's counter and returns the error, so it can
// also back the admin reconcile endpoint.
func (r *Reconciler) ReconcileGym(ctx context.Context, gymID int) error {
	open, err := r.sessions.CountOpenByGym(ctx, gymID)
	if err != nil {
		return err
	}

	current, err := r.counter.Current(ctx, gymID)
	if err != nil {
		return err
	}

	drift := current - open
	metrics.SetOccupancyDrift(gymID, drift)

	if drift == 0 {
		return nil
	}

	logger.Info("reconcile: correcting occupancy drift",
		"gym_id", gymID, "counter", current, "open_records", open)

	return r.counter.Set(ctx, gymID, open)
}
