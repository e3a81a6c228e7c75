package streak

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"gymgate/internal/logger"
	"gymgate/internal/metrics"
)

const (
	queueKey  = "streak:visits"
	failedKey = "streak:visits:failed"

	maxTries = 3
)

// VisitJob is one streak update waiting in the queue. Jobs survive process
// restarts; the admission path only enqueues and never waits for the result.
type VisitJob struct {
	MemberID  int       `json:"member_id"`
	GymID     int       `json:"gym_id"`
	VisitDate time.Time `json:"visit_date"`
	Tries     int       `json:"tries"`
	Created   time.Time `json:"created"`
}

// Publisher is the admission path's view of the queue.
type Publisher interface {
	Enqueue(ctx context.Context, memberID, gymID int, visitDate time.Time) error
}

// Queue pushes visit jobs through Redis and drains them in the background.
type Queue struct {
	redis   *redis.Client
	service Service
}

func NewQueue(client *redis.Client, service Service) *Queue {
	return &Queue{redis: client, service: service}
}

func (q *Queue) Enqueue(ctx context.Context, memberID, gymID int, visitDate time.Time) error {
	job := VisitJob{
		MemberID:  memberID,
		GymID:     gymID,
		VisitDate: visitDate,
		Created:   time.Now().UTC(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	length, err := q.redis.LPush(ctx, queueKey, string(data)).Result()
	if err != nil {
		return err
	}

	metrics.StreakQueueLength.Set(float64(length))
	logger.Debug("streak visit queued", "member_id", memberID, "gym_id", gymID)
	return nil
}

// Start drains the queue until the context is cancelled.
func (q *Queue) Start(ctx context.Context) {
	logger.Info("streak worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("streak worker stopped")
			return
		default:
			q.processNext(ctx)
		}
	}
}

func (q *Queue) processNext(ctx context.Context) {
	result, err := q.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	q.handle(ctx, result[1])
}

func (q *Queue) handle(ctx context.Context, payload string) {
	var job VisitJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		logger.Error("streak worker: bad job payload", "error", err)
		metrics.RecordStreakUpdate("malformed")
		return
	}

	job.Tries++
	if err := q.service.RecordVisit(ctx, job.MemberID, job.VisitDate); err != nil {
		logger.Error("streak update failed",
			"member_id", job.MemberID, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			data, _ := json.Marshal(job)
			if err := q.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
				logger.Error("streak worker: requeue failed", "error", err)
			}
			return
		}

		metrics.RecordStreakUpdate("failed")
		data, _ := json.Marshal(job)
		if err := q.redis.LPush(ctx, failedKey, string(data)).Err(); err != nil {
			logger.Error("streak worker: parking failed job failed", "error", err)
		}
		return
	}

	metrics.RecordStreakUpdate("success")
}
