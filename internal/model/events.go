package model

import "time"

// ItemCompleted is raised when an item goes from pending to done.
type ItemCompleted struct {
	ItemID      int64
	ListID      int64
	CompletedAt time.Time
}
