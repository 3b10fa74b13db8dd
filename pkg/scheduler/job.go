package scheduler

import (
	"fmt"
	"sync/atomic"
)

var jobIDs uint64

// Job is a deferred callback. Identity is the pointer: enqueueing the same
// *Job twice before it runs schedules it once.
type Job struct {
	id    uint64
	fn    func()
	name  string
	depth int
}

// NewJob wraps fn as a schedulable job.
func NewJob(fn func()) *Job {
	return &Job{
		id: atomic.AddUint64(&jobIDs, 1),
		fn: fn,
	}
}

// WithName labels the job in logs and spans.
func (j *Job) WithName(name string) *Job {
	j.name = name
	return j
}

// WithDepth sets the tree depth used by depth-ordered flushing.
func (j *Job) WithDepth(depth int) *Job {
	j.depth = depth
	return j
}

// Depth returns the tree depth of the job.
func (j *Job) Depth() int {
	return j.depth
}

// String returns the job label.
func (j *Job) String() string {
	if j.name != "" {
		return fmt.Sprintf("%s#%d", j.name, j.id)
	}
	return fmt.Sprintf("job#%d", j.id)
}
