package models

import "time"

// BaseTime holds the auditing timestamps shared by persisted entities.
// The repository layer stamps them; nothing else should write these fields.
type BaseTime struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// MarkCreated stamps both timestamps for a row about to be inserted.
func (b *BaseTime) MarkCreated(now time.Time) {
	b.CreatedAt = now
	b.ModifiedAt = now
}

// MarkModified bumps ModifiedAt. It never moves ModifiedAt backwards or
// before CreatedAt.
func (b *BaseTime) MarkModified(now time.Time) {
	if !now.After(b.ModifiedAt) {
		now = b.ModifiedAt.Add(time.Microsecond)
	}
	b.ModifiedAt = now
}
