package queue

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// FailedJobDocument is the shape persisted to the failed_jobs collection
// when a job exhausts its retries.
type FailedJobDocument struct {
	JobType  string    `bson:"job_type"`
	Payload  string    `bson:"payload"`
	Error    string    `bson:"error"`
	Attempts int       `bson:"attempts"`
	FailedAt time.Time `bson:"failed_at"`
}

var failedJobCol *mongo.Collection

// UseCollection enables durable failed-job persistence. Without it,
// failures are kept in memory only and lost on restart.
func UseCollection(col *mongo.Collection) {
	failedJobCol = col
}

func (m *Manager) persistFailed(job Job, typeName string, err error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job:      job,
		Err:      err,
		FailedAt: time.Now(),
		Attempts: attempts,
	})
	m.mu.Unlock()

	if failedJobCol == nil {
		return
	}

	payload, merr := marshalJob(job)
	if merr != nil {
		payload = []byte("{}")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, ierr := failedJobCol.InsertOne(ctx, FailedJobDocument{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    err.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	})
	if ierr != nil {
		logger.Error("queue: persist failed job", "type", typeName, "error", ierr)
	}
}
