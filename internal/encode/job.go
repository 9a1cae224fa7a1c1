package encode

import (
	"time"

	"github.com/google/uuid"
)

// Job tracks one in-flight build. It lives only as long as Build runs.
type Job struct {
	ID         uuid.UUID
	OutputPath string
	Total      int
	Written    int
	Started    time.Time
}

// NewJob starts tracking a build of total frames.
func NewJob(total int) *Job {
	return &Job{
		ID:      uuid.New(),
		Total:   total,
		Started: time.Now(),
	}
}

// Advance records one more written frame and returns the running count.
func (j *Job) Advance() int {
	j.Written++
	return j.Written
}

// Done reports whether every frame has been written.
func (j *Job) Done() bool {
	return j.Written == j.Total
}
