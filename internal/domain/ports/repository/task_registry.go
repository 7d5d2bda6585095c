package repository

import "telegram-midjourney-bot/internal/domain/model"

// TaskRegistry is the sole source of truth for what is in flight. A hash
// present in the registry means the job has not resolved terminally; a hash
// absent means it resolved or was never registered, and the dispatcher treats
// both the same. Exactly these four operations are exposed so nothing can
// reach into the map ad hoc.
type TaskRegistry interface {
	// Register inserts the task, silently overwriting a reused hash.
	Register(task model.PendingTask)
	Lookup(hash string) (model.PendingTask, bool)
	// Remove is idempotent; removing an absent hash is a no-op.
	Remove(hash string)
	Count() int
}
