package memory

import (
	"sync"
	"time"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/repository"
	"telegram-midjourney-bot/internal/infra/metrics"
)

var _ repository.TaskRegistry = (*TaskRegistry)(nil)

// TaskRegistry keeps in-flight jobs in a process-wide map. Polling workers
// and the webhook server run on separate goroutines, so every access takes
// the lock. State is process-lifetime only.
type TaskRegistry struct {
	mu    sync.Mutex
	tasks map[string]model.PendingTask
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{tasks: make(map[string]model.PendingTask)}
}

func (r *TaskRegistry) Register(task model.PendingTask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	r.tasks[task.Hash] = task
	metrics.SetPendingTasks(len(r.tasks))
}

func (r *TaskRegistry) Lookup(hash string) (model.PendingTask, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[hash]
	return t, ok
}

func (r *TaskRegistry) Remove(hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, hash)
	metrics.SetPendingTasks(len(r.tasks))
}

func (r *TaskRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Stale returns tasks registered before the cutoff, for the sweeper. Not part
// of the TaskRegistry port.
func (r *TaskRegistry) Stale(olderThan time.Time) []model.PendingTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PendingTask
	for _, t := range r.tasks {
		if t.CreatedAt.Before(olderThan) {
			out = append(out, t)
		}
	}
	return out
}
