// Copyright 2026 Studium Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"sync"
	"time"

	"github.com/studium-labs/studium/core"
)

// JobState is the lifecycle state of an ingestion job.
type JobState int

const (
	// JobPending means the job is registered and work may be in flight.
	JobPending JobState = iota + 1
	// JobCompleted means the job finished and the document is processed.
	JobCompleted
	// JobFailed means the job aborted; Error holds a summary.
	JobFailed
)

// JobSnapshot is a point-in-time view of an ingestion job.
type JobSnapshot struct {
	Id        core.ID
	UserId    string
	Progress  int
	State     JobState
	Error     string
	UpdatedAt time.Time
}

// Completed reports whether the job reached the completed state.
func (s JobSnapshot) Completed() bool {
	return s.State == JobCompleted
}

// Failed reports whether the job aborted.
func (s JobSnapshot) Failed() bool {
	return s.State == JobFailed
}

// JobTracker is an in-memory registry of in-flight ingestion jobs.
//
// One background worker writes progress while any number of polling
// clients read, so all access goes through a mutex. Jobs live until
// swept; the tracker holds no durable state.
type JobTracker struct {
	mu   sync.Mutex
	jobs map[core.ID]*JobSnapshot
}

// NewJobTracker creates an empty job tracker.
func NewJobTracker() *JobTracker {
	return &JobTracker{
		jobs: make(map[core.ID]*JobSnapshot),
	}
}

// Register creates a job at progress 0 in the pending state.
// Returns ErrJobExists if the job is already registered.
func (t *JobTracker) Register(id core.ID, userId string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.jobs[id]; exists {
		return ErrJobExists
	}
	t.jobs[id] = &JobSnapshot{
		Id:        id,
		UserId:    userId,
		Progress:  0,
		State:     JobPending,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// Advance raises the job's progress. Progress is clamped to [0, 100] and
// never decreases. Absent jobs are a no-op: the worker runs detached from
// the request that registered the job, which may have been swept.
func (t *JobTracker) Advance(id core.ID, progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, exists := t.jobs[id]
	if !exists || job.State != JobPending {
		return
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if progress > job.Progress {
		job.Progress = progress
		job.UpdatedAt = time.Now().UTC()
	}
}

// Complete marks the job completed at progress 100.
// Absent jobs are a no-op.
func (t *JobTracker) Complete(id core.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, exists := t.jobs[id]
	if !exists {
		return
	}
	job.Progress = 100
	job.State = JobCompleted
	job.UpdatedAt = time.Now().UTC()
}

// Fail marks the job failed with an error summary, so pollers can
// distinguish "still working" from "aborted". Absent jobs are a no-op.
func (t *JobTracker) Fail(id core.ID, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, exists := t.jobs[id]
	if !exists {
		return
	}
	job.State = JobFailed
	if err != nil {
		job.Error = err.Error()
	}
	job.UpdatedAt = time.Now().UTC()
}

// Snapshot returns the job's current state, or false if the job is unknown.
func (t *JobTracker) Snapshot(id core.ID) (JobSnapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, exists := t.jobs[id]
	if !exists {
		return JobSnapshot{}, false
	}
	return *job, true
}

// Sweep evicts jobs whose last update is older than ttl, regardless of
// state. Returns the number of jobs removed. Closes the gap of stalled
// jobs accumulating until process restart.
func (t *JobTracker) Sweep(ttl time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().UTC().Add(-ttl)
	removed := 0
	for id, job := range t.jobs {
		if job.UpdatedAt.Before(cutoff) {
			delete(t.jobs, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked jobs.
func (t *JobTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}
