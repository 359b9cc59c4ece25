package model

import "time"

// Visibility decides whether soft-deleted rows take part in a read.
// The zero value hides them.
type Visibility int

const (
	VisibleOnly Visibility = iota
	IncludeDeleted
)

// SoftDelete is embedded by every entity that is deleted by flagging instead of removal.
type SoftDelete struct {
	IsDeleted bool `gorm:"not null;default:false;index"`
	DeletedAt *time.Time
}

// MarkDeleted sets the flag and the timestamp together.
func (s *SoftDelete) MarkDeleted(at time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &at
}
