package repository

import "telegram-midjourney-bot/internal/domain/model"

// TaskHistory records finished jobs per user. Append-only for the process
// lifetime; there is no eviction.
type TaskHistory interface {
	Append(userID int64, hash string, task model.CompletedTask)
	Find(userID int64, hash string) (model.CompletedTask, bool)
}
