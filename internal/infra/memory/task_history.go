package memory

import (
	"sync"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/repository"
)

var _ repository.TaskHistory = (*TaskHistory)(nil)

// TaskHistory maps user -> hash -> completed job. Grows for the process
// lifetime; finished jobs are never evicted.
type TaskHistory struct {
	mu    sync.Mutex
	byUID map[int64]map[string]model.CompletedTask
}

func NewTaskHistory() *TaskHistory {
	return &TaskHistory{byUID: make(map[int64]map[string]model.CompletedTask)}
}

func (h *TaskHistory) Append(userID int64, hash string, task model.CompletedTask) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tasks, ok := h.byUID[userID]
	if !ok {
		tasks = make(map[string]model.CompletedTask)
		h.byUID[userID] = tasks
	}
	tasks[hash] = task
}

func (h *TaskHistory) Find(userID int64, hash string) (model.CompletedTask, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.byUID[userID][hash]
	return t, ok
}
